// Package storage implements the on-disk object store for uploaded files.
// Files are named by a server-generated timestamp+UUID identifier; client
// input contributes the extension only and can never steer a path outside
// the storage root.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/invensys/inventory-api/internal/core/domain"
)

const timestampLayout = "20060102_150405"

// DiskStore persists objects in a flat namespace under a single root
// directory. Concurrent Store calls never conflict: generated names are
// distinct by construction.
type DiskStore struct {
	root   string
	logger zerolog.Logger
}

// NewDiskStore canonicalizes dir, creates it if absent, and returns a store
// rooted there.
func NewDiskStore(dir string, logger zerolog.Logger) (*DiskStore, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	logger.Info().Str("root", root).Msg("storage root ready")
	return &DiskStore{root: root, logger: logger}, nil
}

// Root returns the canonical storage root path.
func (s *DiskStore) Root() string {
	return s.root
}

// Store writes data under a generated filename and returns it. The original
// filename is rejected outright when it carries a path separator or a
// parent-directory segment; it is never rewritten into a safe form.
func (s *DiskStore) Store(data []byte, originalFilename string) (string, error) {
	if len(data) == 0 {
		return "", domain.ErrEmptyFile
	}

	ext, err := safeExtension(originalFilename)
	if err != nil {
		return "", err
	}

	filename := time.Now().UTC().Format(timestampLayout) + "_" + uuid.NewString() + ext
	target, err := s.resolve(filename)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		s.logger.Error().Err(err).Str("filename", filename).Msg("file write failed")
		return "", fmt.Errorf("store %s: %w", filename, err)
	}

	s.logger.Info().Str("filename", filename).Int("bytes", len(data)).Msg("file stored")
	return filename, nil
}

// Load opens the named object. Unknown, unreadable, and unsafe names all
// come back as ErrFileNotFound.
func (s *DiskStore) Load(filename string) (io.ReadCloser, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return nil, domain.ErrFileNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.ErrFileNotFound
	}
	return f, nil
}

// Delete removes the named object, reporting whether it was present.
// An absent or unsafe name is logged and reported as not present.
func (s *DiskStore) Delete(filename string) (bool, error) {
	path, err := s.resolve(filename)
	if err != nil {
		s.logger.Warn().Str("filename", filename).Msg("refusing to delete unsafe filename")
		return false, nil
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Str("filename", filename).Msg("file not found for deletion")
			return false, nil
		}
		s.logger.Error().Err(err).Str("filename", filename).Msg("file delete failed")
		return false, fmt.Errorf("delete %s: %w", filename, err)
	}

	s.logger.Info().Str("filename", filename).Msg("file deleted")
	return true, nil
}

// safeExtension extracts the extension of a client-supplied filename.
// A name containing a separator or a ".." segment fails with ErrUnsafePath
// before any filesystem call is made.
func safeExtension(name string) (string, error) {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", domain.ErrUnsafePath
	}
	return filepath.Ext(name), nil
}

// resolve joins filename onto the root and verifies, after cleaning, that
// the result is still contained under the canonical root. This is a full
// containment check, not a substring match.
func (s *DiskStore) resolve(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", domain.ErrUnsafePath
	}
	path := filepath.Clean(filepath.Join(s.root, filename))
	if !strings.HasPrefix(path, s.root+string(filepath.Separator)) {
		return "", domain.ErrUnsafePath
	}
	return path, nil
}
