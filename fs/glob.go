package fs

import (
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/pagedata"
)

// ExpandTargets replaces every glob pattern in targets with the files it
// matches, in lexical order. URLs and plain paths are kept as given.
// Duplicates are kept for the caller to drop.
func ExpandTargets(targets []string) ([]string, error) {
	var out []string
	for _, target := range targets {
		if IsRemote(target) || !hasMeta(target) {
			out = append(out, target)
			continue
		}
		path, err := LocalPath(target)
		if err != nil {
			return nil, err
		}
		matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
		if err != nil {
			return nil, pagedata.Errorf(pagedata.EINVALID, "invalid pattern %q: %v", target, err)
		}
		if len(matches) == 0 {
			return nil, pagedata.Errorf(pagedata.ENOTFOUND, "no files match %q", target)
		}
		slices.Sort(matches)
		out = append(out, matches...)
	}
	return out, nil
}

func hasMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
