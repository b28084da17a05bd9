package pagedata_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/pagedata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooksLikeStructuredData(t *testing.T) {
	t.Parallel()

	foo := func() *pagedata.Record {
		return pagedata.NewRecord(pagedata.ShapeObject).Set("foo", pagedata.Number(1))
	}

	t.Run("marker key", func(t *testing.T) {
		t.Parallel()

		v := pagedata.NewRecord(pagedata.ShapeObject).Set("@type", pagedata.String("Product"))

		assert.True(t, pagedata.LooksLikeStructuredData(v, "whatever"))
	})

	t.Run("no marker and unrelated key", func(t *testing.T) {
		t.Parallel()

		assert.False(t, pagedata.LooksLikeStructuredData(foo(), "randomKey"))
	})

	t.Run("key pattern overrides missing markers", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pagedata.LooksLikeStructuredData(foo(), "productList"))
	})

	t.Run("key patterns are case insensitive", func(t *testing.T) {
		t.Parallel()

		assert.True(t, pagedata.LooksLikeStructuredData(foo(), "SEO_TAGS"))
		assert.True(t, pagedata.LooksLikeStructuredData(foo(), "BreadCrumbs"))
	})

	t.Run("markers only count on records", func(t *testing.T) {
		t.Parallel()

		seq := pagedata.NewSequence(pagedata.String("@type"))

		assert.False(t, pagedata.LooksLikeStructuredData(seq, "x"))
		assert.False(t, pagedata.LooksLikeStructuredData(pagedata.String("name"), "x"))
	})
}

func TestClassifier_MatchKey(t *testing.T) {
	t.Parallel()

	c := pagedata.NewClassifier()

	tag, ok := c.MatchKey("userProfile")
	require.True(t, ok)
	assert.Equal(t, "user", tag)

	_, ok = c.MatchKey("zzz")
	assert.False(t, ok)
}

func TestClassifier_CustomTables(t *testing.T) {
	t.Parallel()

	p, err := pagedata.NewPattern("cart", "basket|cart")
	require.NoError(t, err)

	c := &pagedata.Classifier{
		Patterns: []pagedata.Pattern{p},
		Markers:  []string{"sku"},
	}

	assert.True(t, c.LooksLikeStructuredData(pagedata.Null{}, "ShoppingCart"))
	assert.True(t, c.LooksLikeStructuredData(
		pagedata.NewRecord(pagedata.ShapeObject).Set("sku", pagedata.String("1")), "x"))
	assert.False(t, c.LooksLikeStructuredData(
		pagedata.NewRecord(pagedata.ShapeObject).Set("@type", pagedata.String("Thing")), "x"))
}

func TestNewPattern_Invalid(t *testing.T) {
	t.Parallel()

	_, err := pagedata.NewPattern("bad", "(")

	require.Error(t, err)
	assert.Equal(t, pagedata.EINVALID, pagedata.ErrorCode(err))
}

func TestDefaultPatterns(t *testing.T) {
	t.Parallel()

	var tags []string
	for _, p := range pagedata.DefaultPatterns() {
		tags = append(tags, p.Tag)
		assert.IsType(t, &regexp.Regexp{}, p.Expr)
	}

	assert.Equal(t, []string{
		"schema", "product", "page", "user", "seo", "config",
		"graph", "entity", "breadcrumb", "review", "event", "location",
	}, tags)
}
