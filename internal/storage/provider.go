// Package storage defines the notes-repository file-system abstraction.
package storage

import "time"

// FileInfo is a lightweight representation returned by list operations.
type FileInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Provider is the interface for notes-repository file operations.
// All paths are relative to the repository root.
type Provider interface {
	// List walks dir and returns metadata for every .md file under it.
	List(dir string) ([]FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// WriteNew writes content to path only if no file exists there yet.
	// An existing file with identical content is a no-op success; an existing
	// file with different content is an error.
	WriteNew(path string, content []byte) error
}
