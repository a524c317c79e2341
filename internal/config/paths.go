package config

import (
	"os"
	"path/filepath"
)

// ResolveWorkingTreeRoot determines the working tree root by walking up
// from start until a directory holding .git is found. It returns "" when
// none is found.
func ResolveWorkingTreeRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, GitDir)); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return ""
}
