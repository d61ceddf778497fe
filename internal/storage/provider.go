// Package storage defines the data-directory file abstraction.
package storage

import "time"

// FileInfo is a lightweight description of a stored file.
type FileInfo struct {
	Path      string
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for data-directory file operations. All paths
// are relative to the provider's root.
type Provider interface {
	// List returns metadata for every regular file under dir (relative to root).
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path.
	Write(path string, content []byte) error
	// Delete removes the file at path.
	Delete(path string) error
	// Root returns the absolute root directory.
	Root() string
}
