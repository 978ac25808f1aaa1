// Package ioutils provides file system utilities for grabs.
//
// This package contains functions for:
//   - File and JSON metadata writing
//   - Saving reconstructed rasters
//   - Directory creation
//
// All functions that accept a context.Context respect cancellation,
// though file operations themselves may not be interruptible.
package ioutils

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing. Parent directories are created as needed.
//
// Example:
//
//	err := WriteFile(ctx, "/out/ark_73873_pf123.json", metadata)
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteJSON marshals v with indentation and writes it to path.
//
// Used for the metadata dumps saved next to reconstructed images.
//
// Example:
//
//	err := WriteJSON(ctx, doc.MetadataPath(outDir), doc)
func WriteJSON(ctx context.Context, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return WriteFile(ctx, path, data)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/out/ark_73873_pf123")
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
