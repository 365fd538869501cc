package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// AssetDirName is the directory holding the bundled field icons
const AssetDirName = "assets"

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if dirPath == "" {
		return fmt.Errorf("directory path is empty")
	}
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		if err := os.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
		}
	}
	return nil
}

// ResolveAssetDir returns the directory icon refs are resolved against.
// An explicit override wins; otherwise the assets directory next to the
// executable, then the one in the working directory, is used.
func ResolveAssetDir(override string) string {
	if override != "" {
		return override
	}

	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(exe), AssetDirName))
	}
	if wd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(wd, AssetDirName))
	}

	for _, dir := range candidates {
		if isDir(dir) {
			return dir
		}
	}
	return AssetDirName
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
