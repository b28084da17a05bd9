//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSource_Capture_SerializesGlobals(t *testing.T) {
	t.Parallel()

	srv := serve(t, `<!DOCTYPE html>
<html><body>
<div id="app">Loading...</div>
<script>
window.__NEXT_DATA__ = {props: {pageProps: {product: {name: "Mug", tags: ["a", "b"]}}}};
window.__NEXT_DATA__.self = window.__NEXT_DATA__;
window.render = function render() {};
document.getElementById('app').textContent = 'Rendered';
</script>
</body></html>`)

	src, err := rod.NewSource()
	require.NoError(t, err)
	defer src.Close()

	page, err := src.Capture(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, page.HTML, "Rendered")
	assert.NotEmpty(t, page.ID)

	v, ok := page.Globals.Lookup("__NEXT_DATA__")
	require.True(t, ok)
	next := v.(*pagedata.Record)
	self, _ := next.Get("self")
	assert.Same(t, next, self)

	fn, ok := page.Globals.Lookup("render")
	require.True(t, ok)
	assert.Equal(t, pagedata.KindExecutable, fn.Kind())

	doc, ok := page.Globals.Lookup("document")
	if ok {
		assert.Equal(t, pagedata.KindOpaque, doc.Kind())
	}
}

func TestSource_Capture_SparseArrayPastCap(t *testing.T) {
	t.Parallel()

	srv := serve(t, `<html><body><script>
window.sparse = []; window.sparse[4e9] = 1;
window.small = [1, 2];
</script></body></html>`)

	src, err := rod.NewSource(rod.WithMaxNodes(5000))
	require.NoError(t, err)
	defer src.Close()

	page, err := src.Capture(context.Background(), srv.URL)
	require.NoError(t, err)

	sparse, ok := page.Globals.Lookup("sparse")
	require.True(t, ok)
	require.Equal(t, pagedata.KindOpaque, sparse.Kind())
	assert.Equal(t, "Array", sparse.(*pagedata.Opaque).Class)

	small, ok := page.Globals.Lookup("small")
	require.True(t, ok)
	assert.Equal(t, 2, small.(*pagedata.Sequence).Len())
}

func TestSource_Capture_ContextCancellation(t *testing.T) {
	t.Parallel()

	src, err := rod.NewSource()
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Capture(ctx, "http://example.com")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSource_Capture_TimeoutOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte(`<html><body>late</body></html>`))
	}))
	defer srv.Close()

	src, err := rod.NewSource(rod.WithTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Capture(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSource_Capture_AfterClose(t *testing.T) {
	t.Parallel()

	src, err := rod.NewSource()
	require.NoError(t, err)
	require.NoError(t, src.Close())

	_, err = src.Capture(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, pagedata.EINVALID, pagedata.ErrorCode(err))
	assert.Contains(t, pagedata.ErrorMessage(err), "closed")
}
