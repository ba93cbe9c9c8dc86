package util

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// WriteFile replaces path with data, creating parent directories first.
func WriteFile(path string, data []byte) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return 0, err
	}

	return int64(len(data)), nil
}

// CopyFileIfExists copies src to dst verbatim. A missing src is not an
// error; copied reports whether anything was written.
func CopyFileIfExists(src, dst string) (copied bool, n int64, err error) {
	in, err := os.Open(src)
	if errors.Is(err, os.ErrNotExist) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			log.Printf("error closing input file %s: %v", src, cerr)
		}
	}()

	info, err := in.Stat()
	if err != nil {
		return false, 0, err
	}
	if info.IsDir() {
		return false, 0, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return false, 0, err
	}

	out, err := os.Create(dst)
	if err != nil {
		return false, 0, err
	}

	n, err = io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return false, n, fmt.Errorf("copy %s: %w", src, err)
	}

	return true, n, nil
}
