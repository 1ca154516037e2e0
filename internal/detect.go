package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// StoragePaths holds the detected locations of lace data on disk.
type StoragePaths struct {
	DataDir      string // base data directory (~/.lace)
	DatabasePath string // thread event database
	CacheDir     string // projected timeline cache
}

// DetectStoragePaths locates the lace data directory. The LACE_DIR
// environment variable overrides the default ~/.lace.
func DetectStoragePaths() (StoragePaths, error) {
	dataDir := os.Getenv("LACE_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return StoragePaths{}, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".lace")
	}

	return StoragePaths{
		DataDir:      dataDir,
		DatabasePath: filepath.Join(dataDir, "lace.db"),
		CacheDir:     filepath.Join(dataDir, "cache"),
	}, nil
}

// GetStoragePaths resolves storage paths, honoring an explicit database
// path when one was given on the command line.
func GetStoragePaths(custom string) (StoragePaths, error) {
	paths, err := DetectStoragePaths()
	if err != nil {
		return StoragePaths{}, err
	}
	if custom != "" {
		paths.DatabasePath = custom
	}
	return paths, nil
}

// DatabaseExists checks whether the thread database is present.
func (sp StoragePaths) DatabaseExists() bool {
	info, err := os.Stat(sp.DatabasePath)
	return err == nil && !info.IsDir()
}
