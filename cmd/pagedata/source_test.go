package main_test

import (
	"context"
	"errors"
	"testing"

	main "github.com/fwojciec/pagedata/cmd/pagedata"
	"github.com/fwojciec/pagedata/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetFetcher(t *testing.T) {
	t.Parallel()

	newFetcher := func(remote, local *[]string) *main.TargetFetcher {
		return &main.TargetFetcher{
			Remote: &mock.Fetcher{
				FetchFn: func(_ context.Context, target string) (string, error) {
					*remote = append(*remote, target)
					return "remote", nil
				},
				CloseFn: func() error { return errors.New("remote close") },
			},
			Local: &mock.Fetcher{
				FetchFn: func(_ context.Context, target string) (string, error) {
					*local = append(*local, target)
					return "local", nil
				},
				CloseFn: func() error { return nil },
			},
		}
	}

	t.Run("routes by scheme", func(t *testing.T) {
		t.Parallel()

		var remote, local []string
		f := newFetcher(&remote, &local)

		for _, target := range []string{"https://a.test/", "page.html", "file:///tmp/p.html", "http://b.test/x"} {
			_, err := f.Fetch(context.Background(), target)
			require.NoError(t, err)
		}

		assert.Equal(t, []string{"https://a.test/", "http://b.test/x"}, remote)
		assert.Equal(t, []string{"page.html", "file:///tmp/p.html"}, local)
	})

	t.Run("close reports errors from either fetcher", func(t *testing.T) {
		t.Parallel()

		var remote, local []string
		err := newFetcher(&remote, &local).Close()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "remote close")
	})
}
