package pagedata_test

import (
	"testing"

	"github.com/fwojciec/pagedata"
	"github.com/stretchr/testify/assert"
)

func TestIsPlainRecord(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		v    pagedata.Value
		want bool
	}{
		{"generic record", pagedata.NewRecord(pagedata.ShapeObject), true},
		{"record without prototype", pagedata.NewRecord(pagedata.ShapeNone), true},
		{"class instance", pagedata.NewRecord("Store"), false},
		{"sequence", pagedata.NewSequence(), false},
		{"executable", pagedata.NewExecutable("f"), false},
		{"opaque", pagedata.NewOpaque("HTMLDivElement"), false},
		{"string", pagedata.String("x"), false},
		{"null", pagedata.Null{}, false},
		{"nil interface", nil, false},
		{"nil record", (*pagedata.Record)(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pagedata.IsPlainRecord(tt.v))
		})
	}
}

func TestContainsExecutable(t *testing.T) {
	t.Parallel()

	t.Run("terminates on self reference", func(t *testing.T) {
		t.Parallel()

		a := pagedata.NewRecord(pagedata.ShapeObject)
		a.Set("self", a)

		assert.False(t, pagedata.ContainsExecutable(a, pagedata.NewVisitedSet()))
	})

	t.Run("finds a direct function member", func(t *testing.T) {
		t.Parallel()

		a := pagedata.NewRecord(pagedata.ShapeObject).Set("f", pagedata.NewExecutable("f"))

		assert.True(t, pagedata.ContainsExecutable(a, pagedata.NewVisitedSet()))
	})

	t.Run("nested data without functions", func(t *testing.T) {
		t.Parallel()

		a := pagedata.NewRecord(pagedata.ShapeObject).
			Set("b", pagedata.NewRecord(pagedata.ShapeObject).Set("c", pagedata.Number(1)))

		assert.False(t, pagedata.ContainsExecutable(a, pagedata.NewVisitedSet()))
	})

	t.Run("finds a function inside a sequence", func(t *testing.T) {
		t.Parallel()

		a := pagedata.NewRecord(pagedata.ShapeObject).
			Set("list", pagedata.NewSequence(pagedata.Number(1), pagedata.NewExecutable("")))

		assert.True(t, pagedata.ContainsExecutable(a, nil))
	})

	t.Run("executable itself", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pagedata.ContainsExecutable(pagedata.NewExecutable("f"), nil))
	})

	t.Run("primitives and opaque values", func(t *testing.T) {
		t.Parallel()

		for _, v := range []pagedata.Value{
			pagedata.Null{}, pagedata.Bool(true), pagedata.Number(1),
			pagedata.String("f"), pagedata.NewOpaque("Window"), nil,
		} {
			assert.False(t, pagedata.ContainsExecutable(v, nil))
		}
	})

	t.Run("already visited composite is not expanded", func(t *testing.T) {
		t.Parallel()

		inner := pagedata.NewRecord(pagedata.ShapeObject).Set("f", pagedata.NewExecutable("f"))
		visited := pagedata.NewVisitedSet()
		visited.Visit(inner)

		outer := pagedata.NewRecord(pagedata.ShapeObject).Set("inner", inner)

		assert.False(t, pagedata.ContainsExecutable(outer, visited))
		assert.True(t, visited.Has(outer))
	})

	t.Run("function behind a cycle is still found", func(t *testing.T) {
		t.Parallel()

		a := pagedata.NewRecord(pagedata.ShapeObject)
		b := pagedata.NewRecord(pagedata.ShapeObject)
		a.Set("b", b)
		b.Set("a", a)
		b.Set("f", pagedata.NewExecutable("f"))

		assert.True(t, pagedata.ContainsExecutable(a, nil))
	})
}

func TestVisitedSet_Visit(t *testing.T) {
	t.Parallel()

	s := pagedata.NewVisitedSet()
	r := pagedata.NewRecord(pagedata.ShapeObject)

	assert.True(t, s.Visit(r))
	assert.False(t, s.Visit(r))
	assert.Equal(t, 1, s.Len())
}
