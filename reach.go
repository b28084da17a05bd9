package pagedata

// ContainsExecutable reports whether an executable is reachable from v.
//
// Composites already in visited are not expanded again, so the walk
// terminates on cycles. For cyclic input the answer is an under-approximation:
// members reachable only through an already-visited composite are not
// re-examined. A nil visited is treated as a fresh set.
func ContainsExecutable(v Value, visited *VisitedSet) bool {
	if visited == nil {
		visited = NewVisitedSet()
	}
	return containsExecutable(v, visited)
}

func containsExecutable(v Value, visited *VisitedSet) bool {
	switch v := v.(type) {
	case *Executable:
		return v != nil
	case *Record:
		if v == nil || !visited.Visit(v) {
			return false
		}
		for _, m := range v.vals {
			if containsExecutable(m, visited) {
				return true
			}
		}
		return false
	case *Sequence:
		if v == nil || !visited.Visit(v) {
			return false
		}
		for _, e := range v.elems {
			if containsExecutable(e, visited) {
				return true
			}
		}
		return false
	case Null, Bool, Number, String, *Opaque:
		return false
	default:
		return false
	}
}
