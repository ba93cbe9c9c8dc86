package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// RemovePartial deletes a file left behind by a failed write, then walks up
// removing directories that became empty, stopping at root.
func RemovePartial(path, root string) {
	if err := os.Remove(path); err == nil {
		fmt.Printf("Removed incomplete output: %s\n", path)
	}

	root = filepath.Clean(root)
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		RemoveIfEmpty(dir)
		if filepath.Clean(dir) == root || dir == filepath.Dir(dir) {
			return
		}
	}
}

func RemoveIfEmpty(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	if len(entries) == 0 {
		if err := os.Remove(dir); err == nil {
			fmt.Printf("Removed empty output folder: %s\n", dir)
		}
	}
}
