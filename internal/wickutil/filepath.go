package wickutil

import (
	"os"
	"path/filepath"
)

// FindWDFile looks for a file with the given name in the working directory,
// then in each of its parents, returning the first one found as an absolute
// path. It returns a nil FileInfo if there is none.
func FindWDFile(name string) (os.FileInfo, string, error) {
	if info, err := os.Stat(name); err == nil {
		path, err := filepath.Abs(name)
		return info, path, err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	for {
		path := filepath.Join(wd, name)
		if info, err := os.Stat(path); err == nil {
			return info, path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return nil, "", nil
		}
		wd = parent
	}
}
