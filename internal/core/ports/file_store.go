package ports

import "io"

// FileStore persists uploaded binary objects under server-generated names.
type FileStore interface {
	// Store writes data under a generated filename derived from
	// originalFilename's extension only, and returns that filename.
	// Fails with domain.ErrEmptyFile or domain.ErrUnsafePath before any
	// filesystem write is attempted.
	Store(data []byte, originalFilename string) (string, error)
	// Load opens the named object for reading. The caller closes it.
	Load(filename string) (io.ReadCloser, error)
	// Delete removes the named object, reporting whether it was present.
	// Deleting an absent object is not an error.
	Delete(filename string) (bool, error)
}
