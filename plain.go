package pagedata

// IsPlainRecord reports whether v is a record built as a bare container:
// its shape is the generic base shape or it has no shape at all. Records
// built by specialised constructors and every non-record value are not plain.
func IsPlainRecord(v Value) bool {
	r, ok := v.(*Record)
	if !ok || r == nil {
		return false
	}
	return r.shape == ShapeObject || r.shape == ShapeNone
}
