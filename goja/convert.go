package goja

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/dop251/goja"
	"github.com/fwojciec/pagedata"
)

// converter turns goja values into pagedata values. Each *goja.Object maps
// to exactly one pagedata value, so sharing and cycles survive conversion.
type converter struct {
	vm       *goja.Runtime
	window   *window
	objProto *goja.Object
	seen     map[*goja.Object]pagedata.Value
	nodes    int // composites plus array elements
	maxNodes int
}

func newConverter(vm *goja.Runtime, w *window, maxNodes int) *converter {
	objProto := vm.Get("Object").ToObject(vm).Get("prototype").ToObject(vm)
	return &converter{
		vm:       vm,
		window:   w,
		objProto: objProto,
		seen:     make(map[*goja.Object]pagedata.Value),
		maxNodes: maxNodes,
	}
}

// global converts the global binding named key.
func (c *converter) global(key string) pagedata.Value {
	return c.member(c.vm.GlobalObject(), key)
}

// member reads obj[key]. A getter that throws yields an opaque value.
func (c *converter) member(obj *goja.Object, key string) (v pagedata.Value) {
	defer func() {
		if r := recover(); r != nil {
			v = pagedata.NewOpaque("Error")
		}
	}()
	return c.convert(obj.Get(key))
}

func (c *converter) convert(v goja.Value) pagedata.Value {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return pagedata.Null{}
	}
	obj, ok := v.(*goja.Object)
	if !ok {
		return primitive(v)
	}
	if existing, ok := c.seen[obj]; ok {
		return existing
	}
	if class, ok := c.window.hosts[obj]; ok {
		return c.remember(obj, pagedata.NewOpaque(class))
	}
	if _, ok := goja.AssertFunction(obj); ok {
		return c.remember(obj, pagedata.NewExecutable(obj.Get("name").String()))
	}
	if c.nodes >= c.maxNodes {
		return pagedata.NewOpaque(obj.ClassName())
	}

	switch obj.ClassName() {
	case "Array":
		// Elements count against the cap so sparse arrays stay bounded.
		n := obj.Get("length").ToInteger()
		if n > int64(c.maxNodes-c.nodes-1) {
			return c.remember(obj, pagedata.NewOpaque("Array"))
		}
		c.nodes += 1 + int(n)
		seq := pagedata.NewSequence()
		c.remember(obj, seq)
		for i := range int(n) {
			seq.Append(c.member(obj, strconv.Itoa(i)))
		}
		return seq
	case "Object":
		c.nodes++
		r := pagedata.NewRecord(c.shape(obj))
		c.remember(obj, r)
		for _, key := range obj.Keys() {
			r.Set(key, c.member(obj, key))
		}
		return r
	default:
		return c.remember(obj, pagedata.NewOpaque(obj.ClassName()))
	}
}

func (c *converter) remember(obj *goja.Object, v pagedata.Value) pagedata.Value {
	c.seen[obj] = v
	return v
}

// shape names the constructor of an ordinary object.
func (c *converter) shape(obj *goja.Object) pagedata.Shape {
	proto := obj.Prototype()
	if proto == nil {
		return pagedata.ShapeNone
	}
	if proto.SameAs(c.objProto) {
		return pagedata.ShapeObject
	}
	name := "Object"
	func() {
		defer func() { _ = recover() }()
		if ctor, ok := proto.Get("constructor").(*goja.Object); ok {
			if n := ctor.Get("name"); n != nil && n.String() != "" {
				name = n.String()
			}
		}
	}()
	if name == "Object" {
		// Inherits from a plain object literal rather than a class.
		return pagedata.Shape("Object.create")
	}
	return pagedata.Shape(name)
}

func primitive(v goja.Value) pagedata.Value {
	switch x := v.Export().(type) {
	case bool:
		return pagedata.Bool(x)
	case int64:
		return pagedata.Number(float64(x))
	case float64:
		return pagedata.Number(x)
	case string:
		return pagedata.String(x)
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return pagedata.Number(f)
	default:
		return pagedata.NewOpaque(fmt.Sprintf("%T", x))
	}
}
