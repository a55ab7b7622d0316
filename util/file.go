package util

import (
	"os"
	"path/filepath"
	"strings"
)

// SplitExt splits path into base and extension. Leading dots of the file name
// do not start an extension, so ".motion" has none.
func SplitExt(path string) (string, string) {
	name := filepath.Base(path)
	trimmed := strings.TrimLeft(name, ".")
	i := strings.LastIndexByte(trimmed, '.')
	if i < 0 || name == "." || name == ".." {
		return path, ""
	}
	ext := trimmed[i:]
	return path[:len(path)-len(ext)], ext
}

// WriteFileAtomic replaces path with data. Readers see either the old file or
// the complete new one.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
