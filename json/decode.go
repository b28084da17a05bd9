// Package json converts between JSON text and pagedata values.
//
// Decoding preserves the member order of objects, which encoding/json does
// not offer for untyped data.
package json

import (
	"github.com/buger/jsonparser"
	"github.com/bytedance/sonic"
	"github.com/fwojciec/pagedata"
)

// Unmarshal parses data into a value. Objects become records with the
// generic shape and arrays become sequences.
func Unmarshal(data []byte) (pagedata.Value, error) {
	if !sonic.Valid(data) {
		return nil, pagedata.Errorf(pagedata.EINVALID, "invalid JSON")
	}
	raw, typ, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "invalid JSON: %v", err)
	}
	return decode(raw, typ)
}

// UnmarshalRecord parses data that must hold a JSON object.
func UnmarshalRecord(data []byte) (*pagedata.Record, error) {
	v, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	r, ok := v.(*pagedata.Record)
	if !ok {
		return nil, pagedata.Errorf(pagedata.EINVALID, "expected JSON object, got %s", v.Kind())
	}
	return r, nil
}

func decode(raw []byte, typ jsonparser.ValueType) (pagedata.Value, error) {
	switch typ {
	case jsonparser.Null:
		return pagedata.Null{}, nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(raw)
		if err != nil {
			return nil, pagedata.Errorf(pagedata.EINVALID, "invalid boolean: %v", err)
		}
		return pagedata.Bool(b), nil
	case jsonparser.Number:
		f, err := jsonparser.ParseFloat(raw)
		if err != nil {
			return nil, pagedata.Errorf(pagedata.EINVALID, "invalid number: %v", err)
		}
		return pagedata.Number(f), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return nil, pagedata.Errorf(pagedata.EINVALID, "invalid string: %v", err)
		}
		return pagedata.String(s), nil
	case jsonparser.Object:
		return decodeObject(raw)
	case jsonparser.Array:
		return decodeArray(raw)
	default:
		return nil, pagedata.Errorf(pagedata.EINVALID, "unexpected JSON token")
	}
}

func decodeObject(raw []byte) (*pagedata.Record, error) {
	r := pagedata.NewRecord(pagedata.ShapeObject)
	err := jsonparser.ObjectEach(raw, func(key, value []byte, typ jsonparser.ValueType, _ int) error {
		k, err := jsonparser.ParseString(key)
		if err != nil {
			return err
		}
		v, err := decode(value, typ)
		if err != nil {
			return err
		}
		r.Set(k, v)
		return nil
	})
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "invalid object: %v", err)
	}
	return r, nil
}

func decodeArray(raw []byte) (*pagedata.Sequence, error) {
	s := pagedata.NewSequence()
	var decodeErr error
	_, err := jsonparser.ArrayEach(raw, func(value []byte, typ jsonparser.ValueType, _ int, err error) {
		if decodeErr != nil {
			return
		}
		if err != nil {
			decodeErr = err
			return
		}
		v, err := decode(value, typ)
		if err != nil {
			decodeErr = err
			return
		}
		s.Append(v)
	})
	if err == nil {
		err = decodeErr
	}
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "invalid array: %v", err)
	}
	return s, nil
}
