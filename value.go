package pagedata

import (
	"iter"
	"sync/atomic"
)

// Kind identifies the case of a Value.
type Kind uint8

// Value kinds.
const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindRecord
	KindSequence
	KindExecutable
	KindOpaque
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindRecord:
		return "record"
	case KindSequence:
		return "sequence"
	case KindExecutable:
		return "executable"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value is a node of a host-supplied object graph. It is one of Null, Bool,
// Number, String, *Record, *Sequence, *Executable or *Opaque.
//
// Composite values may be shared and may form cycles.
type Value interface {
	Kind() Kind
	value()
}

// ID is the identity token of a composite value. IDs are assigned once, at
// construction, and are never reused within a process.
type ID uint64

var lastID atomic.Uint64

func nextID() ID {
	return ID(lastID.Add(1))
}

// Composite is implemented by values with reference identity.
type Composite interface {
	Value
	Identity() ID
}

// Null is the absent value. Both JavaScript null and undefined map to Null.
type Null struct{}

// Bool is a boolean primitive.
type Bool bool

// Number is a numeric primitive.
type Number float64

// String is a string primitive.
type String string

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Number) Kind() Kind { return KindNumber }
func (String) Kind() Kind { return KindString }

func (Null) value()   {}
func (Bool) value()   {}
func (Number) value() {}
func (String) value() {}

// Shape names the constructor a record was built with.
type Shape string

// Well-known shapes. Any other shape denotes a specialised constructor.
const (
	// ShapeNone is a record with no prototype at all.
	ShapeNone Shape = ""

	// ShapeObject is the generic base record shape.
	ShapeObject Shape = "Object"
)

// Record is an insertion-ordered mapping of string keys to values.
type Record struct {
	id    ID
	shape Shape
	keys  []string
	index map[string]int
	vals  []Value
}

// NewRecord returns an empty record with the given shape.
func NewRecord(shape Shape) *Record {
	return &Record{
		id:    nextID(),
		shape: shape,
		index: make(map[string]int),
	}
}

func (*Record) Kind() Kind { return KindRecord }
func (*Record) value()     {}

// Identity returns the record's identity token.
func (r *Record) Identity() ID { return r.id }

// Shape returns the record's constructor shape.
func (r *Record) Shape() Shape { return r.shape }

// Len returns the number of members.
func (r *Record) Len() int { return len(r.keys) }

// Set assigns v to key. Assigning to an existing key keeps its position.
// A nil v is stored as Null.
func (r *Record) Set(key string, v Value) *Record {
	if v == nil {
		v = Null{}
	}
	if i, ok := r.index[key]; ok {
		r.vals[i] = v
		return r
	}
	r.index[key] = len(r.keys)
	r.keys = append(r.keys, key)
	r.vals = append(r.vals, v)
	return r
}

// Get returns the member stored under key.
func (r *Record) Get(key string) (Value, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.vals[i], true
}

// Keys returns the member keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// All iterates over the members in insertion order.
func (r *Record) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for i, k := range r.keys {
			if !yield(k, r.vals[i]) {
				return
			}
		}
	}
}

// Sequence is an ordered list of values.
type Sequence struct {
	id    ID
	elems []Value
}

// NewSequence returns a sequence holding elems. Nil elements are stored as Null.
func NewSequence(elems ...Value) *Sequence {
	s := &Sequence{id: nextID(), elems: make([]Value, 0, len(elems))}
	for _, e := range elems {
		s.Append(e)
	}
	return s
}

func (*Sequence) Kind() Kind { return KindSequence }
func (*Sequence) value()     {}

// Identity returns the sequence's identity token.
func (s *Sequence) Identity() ID { return s.id }

// Len returns the number of elements.
func (s *Sequence) Len() int { return len(s.elems) }

// At returns the element at index i.
func (s *Sequence) At(i int) Value { return s.elems[i] }

// Append adds v to the end of the sequence.
func (s *Sequence) Append(v Value) *Sequence {
	if v == nil {
		v = Null{}
	}
	s.elems = append(s.elems, v)
	return s
}

// All iterates over the elements in index order.
func (s *Sequence) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		for i, e := range s.elems {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Executable is a callable unit. Its body is never inspected.
type Executable struct {
	id   ID
	Name string
}

// NewExecutable returns an executable with the given (possibly empty) name.
func NewExecutable(name string) *Executable {
	return &Executable{id: nextID(), Name: name}
}

func (*Executable) Kind() Kind { return KindExecutable }
func (*Executable) value()     {}

// Identity returns the executable's identity token.
func (e *Executable) Identity() ID { return e.id }

// Opaque is a host-native object whose members are not exposed, such as a
// DOM node or a Date.
type Opaque struct {
	id    ID
	Class string
}

// NewOpaque returns an opaque value labelled with the host class name.
func NewOpaque(class string) *Opaque {
	return &Opaque{id: nextID(), Class: class}
}

func (*Opaque) Kind() Kind { return KindOpaque }
func (*Opaque) value()     {}

// Identity returns the opaque value's identity token.
func (o *Opaque) Identity() ID { return o.id }

// Binding is one named entry of a global namespace.
type Binding struct {
	Name  string
	Value Value
}

// Namespace is a flat table of global bindings in host enumeration order.
type Namespace []Binding

// Lookup returns the value of the first binding named name.
func (ns Namespace) Lookup(name string) (Value, bool) {
	for _, b := range ns {
		if b.Name == name {
			return b.Value, true
		}
	}
	return nil, false
}
