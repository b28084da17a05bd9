package rod

import (
	"math"

	"github.com/buger/jsonparser"
	"github.com/fwojciec/pagedata"
)

// serializeWindow walks the page's globals breadth-first and returns a JSON
// node table. Composites are emitted once and referenced by index, so shared
// and cyclic values survive the trip.
//
// Table layout:
//
//	{"roots": [[name, ref], ...], "nodes": [node, ...]}
//
// A node is {"k":"rec","s":shape,"m":[[key, ref], ...]}, {"k":"seq","e":[ref, ...]},
// {"k":"fn","n":name} or {"k":"opq","c":class}. A ref is {"t":"n"} (null),
// {"t":"b","v":bool}, {"t":"d","v":number}, {"t":"f","v":"NaN"|"Infinity"|"-Infinity"},
// {"t":"s","v":string} or {"t":"r","v":index}.
const serializeWindow = `(maxNodes) => {
  const nodes = [];
  const ids = new Map();
  const pending = [];
  let elements = 0;

  const classOf = (v) => {
    const tag = Object.prototype.toString.call(v).slice(8, -1);
    if (tag !== 'Object') return tag;
    const ctor = v.constructor;
    return (ctor && ctor.name) || tag;
  };
  const isHost = (v) =>
    v === window ||
    (typeof Node === 'function' && v instanceof Node) ||
    (typeof EventTarget === 'function' && v instanceof EventTarget);

  const emit = (node) => {
    nodes.push(node);
    return { t: 'r', v: nodes.length - 1 };
  };

  const ref = (v) => {
    if (v === null || v === undefined) return { t: 'n' };
    switch (typeof v) {
      case 'boolean': return { t: 'b', v: v };
      case 'number': return Number.isFinite(v) ? { t: 'd', v: v } : { t: 'f', v: String(v) };
      case 'bigint': return { t: 'd', v: Number(v) };
      case 'string': return { t: 's', v: v };
      case 'symbol': return { t: 'n' };
    }
    if (ids.has(v)) return { t: 'r', v: ids.get(v) };
    ids.set(v, nodes.length);

    if (nodes.length + elements >= maxNodes) return emit({ k: 'opq', c: classOf(v) });
    if (typeof v === 'function') return emit({ k: 'fn', n: v.name || '' });
    if (Array.isArray(v)) {
      if (nodes.length + elements + 1 + v.length > maxNodes) return emit({ k: 'opq', c: 'Array' });
      elements += v.length;
      const node = { k: 'seq', e: [] };
      pending.push(() => {
        for (let i = 0; i < v.length; i++) node.e.push(read(() => v[i]));
      });
      return emit(node);
    }
    if (isHost(v)) return emit({ k: 'opq', c: classOf(v) });

    const tag = Object.prototype.toString.call(v).slice(8, -1);
    if (tag !== 'Object') return emit({ k: 'opq', c: tag });

    const proto = Object.getPrototypeOf(v);
    let shape = '';
    if (proto === Object.prototype) {
      shape = 'Object';
    } else if (proto !== null) {
      const ctor = proto.constructor;
      shape = (ctor && ctor.name) || 'Object.create';
    }
    const node = { k: 'rec', s: shape, m: [] };
    pending.push(() => {
      for (const key of Object.keys(v)) node.m.push([key, read(() => v[key])]);
    });
    return emit(node);
  };

  const read = (get) => {
    try {
      return ref(get());
    } catch (e) {
      return emit({ k: 'opq', c: 'Error' });
    }
  };

  const roots = [];
  for (const key of Object.keys(window)) {
    roots.push([key, read(() => window[key])]);
  }
  while (pending.length > 0) pending.shift()();

  return JSON.stringify({ roots: roots, nodes: nodes });
}`

// DecodeGraph decodes a node table produced by the in-page serializer into
// a namespace. References to the same node yield the same composite value.
func DecodeGraph(data []byte) (pagedata.Namespace, error) {
	d := &graphDecoder{}
	if err := d.allocate(data); err != nil {
		return nil, err
	}
	if err := d.fill(); err != nil {
		return nil, err
	}

	var ns pagedata.Namespace
	var decodeErr error
	_, err := jsonparser.ArrayEach(data, func(entry []byte, _ jsonparser.ValueType, _ int, err error) {
		if decodeErr != nil {
			return
		}
		if err != nil {
			decodeErr = err
			return
		}
		name, v, err := d.member(entry)
		if err != nil {
			decodeErr = err
			return
		}
		ns = append(ns, pagedata.Binding{Name: name, Value: v})
	}, "roots")
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "graph roots: %v", err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return ns, nil
}

type graphDecoder struct {
	raw    [][]byte
	values []pagedata.Value
}

// allocate creates one value per node so that forward references resolve.
func (d *graphDecoder) allocate(data []byte) error {
	var decodeErr error
	_, err := jsonparser.ArrayEach(data, func(node []byte, _ jsonparser.ValueType, _ int, err error) {
		if decodeErr != nil {
			return
		}
		if err != nil {
			decodeErr = err
			return
		}
		kind, err := jsonparser.GetString(node, "k")
		if err != nil {
			decodeErr = pagedata.Errorf(pagedata.EINVALID, "graph node %d: missing kind", len(d.raw))
			return
		}
		var v pagedata.Value
		switch kind {
		case "rec":
			shape, _ := jsonparser.GetString(node, "s")
			v = pagedata.NewRecord(pagedata.Shape(shape))
		case "seq":
			v = pagedata.NewSequence()
		case "fn":
			name, _ := jsonparser.GetString(node, "n")
			v = pagedata.NewExecutable(name)
		case "opq":
			class, _ := jsonparser.GetString(node, "c")
			v = pagedata.NewOpaque(class)
		default:
			decodeErr = pagedata.Errorf(pagedata.EINVALID, "graph node %d: unknown kind %q", len(d.raw), kind)
			return
		}
		d.raw = append(d.raw, node)
		d.values = append(d.values, v)
	}, "nodes")
	if err != nil {
		return pagedata.Errorf(pagedata.EINVALID, "graph nodes: %v", err)
	}
	return decodeErr
}

// fill populates record members and sequence elements.
func (d *graphDecoder) fill() error {
	for i, node := range d.raw {
		var decodeErr error
		var err error
		switch v := d.values[i].(type) {
		case *pagedata.Record:
			_, err = jsonparser.ArrayEach(node, func(entry []byte, _ jsonparser.ValueType, _ int, err error) {
				if decodeErr != nil {
					return
				}
				key, member, err := d.member(entry)
				if err != nil {
					decodeErr = err
					return
				}
				v.Set(key, member)
			}, "m")
		case *pagedata.Sequence:
			_, err = jsonparser.ArrayEach(node, func(ref []byte, _ jsonparser.ValueType, _ int, err error) {
				if decodeErr != nil {
					return
				}
				elem, err := d.ref(ref)
				if err != nil {
					decodeErr = err
					return
				}
				v.Append(elem)
			}, "e")
		default:
			continue
		}
		if err != nil {
			return pagedata.Errorf(pagedata.EINVALID, "graph node %d: %v", i, err)
		}
		if decodeErr != nil {
			return decodeErr
		}
	}
	return nil
}

// member decodes a [name, ref] pair.
func (d *graphDecoder) member(entry []byte) (string, pagedata.Value, error) {
	name, err := jsonparser.GetString(entry, "[0]")
	if err != nil {
		return "", nil, pagedata.Errorf(pagedata.EINVALID, "graph member: missing name")
	}
	raw, _, _, err := jsonparser.Get(entry, "[1]")
	if err != nil {
		return "", nil, pagedata.Errorf(pagedata.EINVALID, "graph member %q: missing value", name)
	}
	v, err := d.ref(raw)
	if err != nil {
		return "", nil, err
	}
	return name, v, nil
}

func (d *graphDecoder) ref(raw []byte) (pagedata.Value, error) {
	tag, err := jsonparser.GetString(raw, "t")
	if err != nil {
		return nil, pagedata.Errorf(pagedata.EINVALID, "graph ref: missing tag")
	}
	switch tag {
	case "n":
		return pagedata.Null{}, nil
	case "b":
		b, err := jsonparser.GetBoolean(raw, "v")
		if err != nil {
			return nil, pagedata.Errorf(pagedata.EINVALID, "graph ref: bad bool")
		}
		return pagedata.Bool(b), nil
	case "d":
		f, err := jsonparser.GetFloat(raw, "v")
		if err != nil {
			return nil, pagedata.Errorf(pagedata.EINVALID, "graph ref: bad number")
		}
		return pagedata.Number(f), nil
	case "f":
		s, _ := jsonparser.GetString(raw, "v")
		switch s {
		case "Infinity":
			return pagedata.Number(math.Inf(1)), nil
		case "-Infinity":
			return pagedata.Number(math.Inf(-1)), nil
		default:
			return pagedata.Number(math.NaN()), nil
		}
	case "s":
		s, err := jsonparser.GetString(raw, "v")
		if err != nil {
			return nil, pagedata.Errorf(pagedata.EINVALID, "graph ref: bad string")
		}
		return pagedata.String(s), nil
	case "r":
		idx, err := jsonparser.GetInt(raw, "v")
		if err != nil || idx < 0 || int(idx) >= len(d.values) {
			return nil, pagedata.Errorf(pagedata.EINVALID, "graph ref: node index out of range")
		}
		return d.values[idx], nil
	default:
		return nil, pagedata.Errorf(pagedata.EINVALID, "graph ref: unknown tag %q", tag)
	}
}
