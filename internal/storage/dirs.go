package storage

import (
	"fmt"
	"os"
)

// EnsureDirs creates every upload root that does not exist yet.
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create upload directory %s: %w", dir, err)
		}
	}
	return nil
}
