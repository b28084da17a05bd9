package pagedata

// CollectHydration selects the namespace entries that look like embedded
// application state: non-empty plain records from which no executable is
// reachable. The result is a fresh record (shape Object) keyed by binding
// name, in namespace order.
//
// Every binding is judged with its own VisitedSet, so a composite shared by
// two globals is scanned once per global.
func CollectHydration(ns Namespace) *Record {
	out := NewRecord(ShapeObject)
	for _, b := range ns {
		if b.Value == nil || b.Value.Kind() == KindExecutable {
			continue
		}
		if !IsPlainRecord(b.Value) {
			continue
		}
		r := b.Value.(*Record)
		if ContainsExecutable(r, NewVisitedSet()) || r.Len() == 0 {
			continue
		}
		out.Set(b.Name, r)
	}
	return out
}
