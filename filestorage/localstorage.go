package filestorage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// localStorage keeps files on disk, buckets are directories
type localStorage struct {
}

// NewLocalStorage returns a new local storage instance
func NewLocalStorage() FileStorage {
	return &localStorage{}
}

// Upload writes b to bucket/fileName, creating the directories it needs.
func (ls *localStorage) Upload(ctx context.Context, b []byte, bucket, fileName string) (string, error) {
	name := filepath.Join(bucket, fileName)
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s, error %w", filepath.Dir(name), err)
	}
	if err := os.WriteFile(name, b, 0644); err != nil {
		return "", fmt.Errorf("failed to save file %s on path %s, error %w", fileName, name, err)
	}
	return name, nil
}

func (ls *localStorage) Download(ctx context.Context, bucket, fileName string) ([]byte, error) {
	name := filepath.Join(bucket, fileName)
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s, error %w", name, err)
	}
	return b, nil
}

// FileExists checks if file exists. If file exists
// it returns true, else false
func (ls *localStorage) FileExists(ctx context.Context, bucket, fileName string) bool {
	_, err := os.Stat(filepath.Join(bucket, fileName))
	return err == nil
}
