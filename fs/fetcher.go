// Package fs provides filesystem access: reading local HTML pages, expanding
// target globs and writing exports atomically.
package fs

import (
	"context"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/fwojciec/pagedata"
	"github.com/fwojciec/pagedata/goquery"
	"github.com/gabriel-vasile/mimetype"
)

// Ensure Fetcher implements pagedata.Fetcher at compile time.
var _ pagedata.Fetcher = (*Fetcher)(nil)

// Fetcher reads pages saved on the local filesystem. Targets are plain paths
// or file:// URLs.
type Fetcher struct{}

// NewFetcher creates a new Fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{}
}

// Fetch reads the file at target. Files that are not text are rejected.
func (f *Fetcher) Fetch(ctx context.Context, target string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path, err := LocalPath(target)
	if err != nil {
		return "", err
	}
	data, err := ReadText(path)
	if err != nil {
		return "", err
	}
	return goquery.DecodeHTML(data, "")
}

// Close is a no-op.
func (f *Fetcher) Close() error {
	return nil
}

// ReadText reads the file at path and verifies it holds text.
func ReadText(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, pagedata.Errorf(pagedata.ENOTFOUND, "file not found: %s", path)
	} else if err != nil {
		return nil, err
	}

	mtype := mimetype.Detect(data)
	if !isText(mtype) {
		return nil, pagedata.Errorf(pagedata.EINVALID, "%s is %s, not text", path, mtype.String())
	}
	return data, nil
}

func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// LocalPath converts a file:// URL to a path. Other targets are returned
// unchanged.
func LocalPath(target string) (string, error) {
	if !strings.HasPrefix(target, "file://") {
		return target, nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", pagedata.Errorf(pagedata.EINVALID, "invalid file URL %q: %v", target, err)
	}
	return u.Path, nil
}

// IsRemote reports whether target names an http(s) resource.
func IsRemote(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
