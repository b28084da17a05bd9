package json

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/fwojciec/pagedata"
)

// Circular replaces a composite that contains itself.
const Circular = "[Circular]"

// Encoder writes values as JSON.
//
// Executables are dropped from records and written as null inside sequences.
// Opaque values are written as empty objects. Shared composites are written
// in full at every reference; a reference back to an enclosing composite is
// written as the string Circular.
type Encoder struct {
	w      io.Writer
	prefix string
	indent string
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// SetIndent formats each subsequent value with the given prefix and indent.
func (e *Encoder) SetIndent(prefix, indent string) {
	e.prefix = prefix
	e.indent = indent
}

// Encode writes v followed by a newline.
func (e *Encoder) Encode(v pagedata.Value) error {
	var buf bytes.Buffer
	s := &encodeState{buf: &buf, prefix: e.prefix, indent: e.indent, stack: make(map[pagedata.ID]bool)}
	if err := s.value(v, 0); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := e.w.Write(buf.Bytes())
	return err
}

// Marshal returns the compact encoding of v.
func Marshal(v pagedata.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// MarshalIndent is like Marshal but indents the output.
func MarshalIndent(v pagedata.Value, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	enc.SetIndent(prefix, indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

type encodeState struct {
	buf    *bytes.Buffer
	prefix string
	indent string

	// stack holds the composites currently being written.
	stack map[pagedata.ID]bool
}

func (s *encodeState) newline(depth int) {
	if s.indent == "" && s.prefix == "" {
		return
	}
	s.buf.WriteByte('\n')
	s.buf.WriteString(s.prefix)
	s.buf.WriteString(strings.Repeat(s.indent, depth))
}

func (s *encodeState) str(v string) error {
	b, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	s.buf.Write(b)
	return nil
}

func (s *encodeState) value(v pagedata.Value, depth int) error {
	switch v := v.(type) {
	case nil, pagedata.Null, *pagedata.Executable:
		s.buf.WriteString("null")
	case pagedata.Bool:
		s.buf.WriteString(strconv.FormatBool(bool(v)))
	case pagedata.Number:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			s.buf.WriteString("null")
			return nil
		}
		format := byte('f')
		if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
			format = 'e'
		}
		s.buf.WriteString(strconv.FormatFloat(f, format, -1, 64))
	case pagedata.String:
		return s.str(string(v))
	case *pagedata.Opaque:
		s.buf.WriteString("{}")
	case *pagedata.Record:
		if s.stack[v.Identity()] {
			return s.str(Circular)
		}
		s.stack[v.Identity()] = true
		defer delete(s.stack, v.Identity())
		return s.record(v, depth)
	case *pagedata.Sequence:
		if s.stack[v.Identity()] {
			return s.str(Circular)
		}
		s.stack[v.Identity()] = true
		defer delete(s.stack, v.Identity())
		return s.sequence(v, depth)
	}
	return nil
}

func (s *encodeState) record(r *pagedata.Record, depth int) error {
	s.buf.WriteByte('{')
	n := 0
	for k, v := range r.All() {
		if _, ok := v.(*pagedata.Executable); ok {
			continue
		}
		if n > 0 {
			s.buf.WriteByte(',')
		}
		n++
		s.newline(depth + 1)
		if err := s.str(k); err != nil {
			return err
		}
		s.buf.WriteByte(':')
		if s.indent != "" {
			s.buf.WriteByte(' ')
		}
		if err := s.value(v, depth+1); err != nil {
			return err
		}
	}
	if n > 0 {
		s.newline(depth)
	}
	s.buf.WriteByte('}')
	return nil
}

func (s *encodeState) sequence(seq *pagedata.Sequence, depth int) error {
	s.buf.WriteByte('[')
	for i, v := range seq.All() {
		if i > 0 {
			s.buf.WriteByte(',')
		}
		s.newline(depth + 1)
		if err := s.value(v, depth+1); err != nil {
			return err
		}
	}
	if seq.Len() > 0 {
		s.newline(depth)
	}
	s.buf.WriteByte(']')
	return nil
}
