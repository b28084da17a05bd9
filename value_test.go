package pagedata_test

import (
	"testing"

	"github.com/fwojciec/pagedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Set(t *testing.T) {
	t.Parallel()

	t.Run("keeps insertion order", func(t *testing.T) {
		t.Parallel()

		r := pagedata.NewRecord(pagedata.ShapeObject).
			Set("b", pagedata.Number(1)).
			Set("a", pagedata.Number(2)).
			Set("c", pagedata.Number(3))

		assert.Equal(t, []string{"b", "a", "c"}, r.Keys())
	})

	t.Run("replacing a key keeps its position", func(t *testing.T) {
		t.Parallel()

		r := pagedata.NewRecord(pagedata.ShapeObject).
			Set("a", pagedata.Number(1)).
			Set("b", pagedata.Number(2)).
			Set("a", pagedata.String("x"))

		assert.Equal(t, []string{"a", "b"}, r.Keys())
		v, ok := r.Get("a")
		require.True(t, ok)
		assert.Equal(t, pagedata.String("x"), v)
	})

	t.Run("nil is stored as null", func(t *testing.T) {
		t.Parallel()

		r := pagedata.NewRecord(pagedata.ShapeNone).Set("a", nil)

		v, ok := r.Get("a")
		require.True(t, ok)
		assert.Equal(t, pagedata.KindNull, v.Kind())
	})
}

func TestRecord_All_StopsEarly(t *testing.T) {
	t.Parallel()

	r := pagedata.NewRecord(pagedata.ShapeObject).
		Set("a", pagedata.Number(1)).
		Set("b", pagedata.Number(2))

	var seen []string
	for k := range r.All() {
		seen = append(seen, k)
		break
	}

	assert.Equal(t, []string{"a"}, seen)
}

func TestSequence(t *testing.T) {
	t.Parallel()

	s := pagedata.NewSequence(pagedata.String("a"), nil).Append(pagedata.Bool(true))

	require.Equal(t, 3, s.Len())
	assert.Equal(t, pagedata.String("a"), s.At(0))
	assert.Equal(t, pagedata.Null{}, s.At(1))
	assert.Equal(t, pagedata.Bool(true), s.At(2))
}

func TestIdentity_IsUniquePerComposite(t *testing.T) {
	t.Parallel()

	a := pagedata.NewRecord(pagedata.ShapeObject)
	b := pagedata.NewRecord(pagedata.ShapeObject)
	s := pagedata.NewSequence()
	f := pagedata.NewExecutable("f")
	o := pagedata.NewOpaque("Date")

	ids := map[pagedata.ID]bool{}
	for _, c := range []pagedata.Composite{a, b, s, f, o} {
		ids[c.Identity()] = true
	}
	assert.Len(t, ids, 5)
}

func TestNamespace_Lookup(t *testing.T) {
	t.Parallel()

	ns := pagedata.Namespace{
		{Name: "x", Value: pagedata.Number(1)},
		{Name: "y", Value: pagedata.Number(2)},
		{Name: "x", Value: pagedata.Number(3)},
	}

	v, ok := ns.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, pagedata.Number(1), v)

	_, ok = ns.Lookup("missing")
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "record", pagedata.KindRecord.String())
	assert.Equal(t, "executable", pagedata.NewExecutable("").Kind().String())
	assert.Equal(t, "unknown", pagedata.Kind(99).String())
}
