package fs

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/pagedata"
)

// TargetToPath converts a capture target to a relative export path.
// Example: https://example.com/shop/item → example.com/shop/item.json
func TargetToPath(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", pagedata.Errorf(pagedata.EINVALID, "invalid target %q: %v", target, err)
	}

	path := u.Path
	if u.Scheme == "" || u.Scheme == "file" {
		path = filepath.Base(path)
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	path = strings.TrimPrefix(path, "/")
	switch {
	case path == "":
		path = "index"
	case strings.HasSuffix(path, "/"):
		path += "index"
	}
	if u.Host != "" {
		path = u.Host + "/" + path
	}

	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return "", pagedata.Errorf(pagedata.EINVALID, "path traversal in %q", target)
		}
	}
	return filepath.FromSlash(path) + ".json", nil
}

// WriteFileAtomic writes data to a temporary file beside path and renames it
// into place, so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// FileStore writes exports with atomic update semantics.
// Files are saved to a temporary directory, then moved into place on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save stores the export of target in the temporary directory.
func (s *FileStore) Save(target string, data []byte) error {
	relPath, err := TargetToPath(target)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0644)
}

// Commit replaces the output directory with the saved exports.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}
	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved exports.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
