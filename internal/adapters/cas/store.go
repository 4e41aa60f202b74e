// Package cas implements content-addressed persistence for decoded descriptors.
// Entries are keyed by the producer checksum, one file per descriptor, so a cache
// populated by an earlier run survives process restarts.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

var _ ports.DescriptorStore = (*Store)(nil)

// Store implements ports.DescriptorStore using a file-per-descriptor strategy
// under a root directory. The same trust assumption as the in-memory store
// applies: a checksum hit is returned without re-validating content.
//
// I/O failures degrade to cache misses or dropped writes; persistence is an
// optimization, never a correctness requirement.
type Store struct {
	root   string
	logger ports.Logger
}

// NewStore creates a Store rooted at dir, creating it if needed.
func NewStore(dir string, logger ports.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, zerr.Wrap(err, "failed to create descriptor cache directory")
	}
	return &Store{root: dir, logger: logger}, nil
}

// Get retrieves the descriptor persisted under checksum.
func (s *Store) Get(checksum domain.Checksum) (*domain.TagHelperDescriptor, bool) {
	//nolint:gosec // Path is constructed from the root and a fixed-width hex key
	data, err := os.ReadFile(s.filename(checksum))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && s.logger != nil {
			s.logger.Warn("descriptor cache read failed: " + err.Error())
		}
		return nil, false
	}

	var rec descriptorRecord
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		// A corrupt entry is treated as a miss; the decoder rebuilds and overwrites it.
		if s.logger != nil {
			s.logger.Warn("descriptor cache entry corrupt: " + err.Error())
		}
		return nil, false
	}
	return rec.descriptor(), true
}

// Set persists a descriptor under its checksum.
func (s *Store) Set(checksum domain.Checksum, descriptor *domain.TagHelperDescriptor) {
	data, err := msgpack.Marshal(newDescriptorRecord(descriptor))
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("descriptor cache encode failed: " + err.Error())
		}
		return
	}
	if err := os.WriteFile(s.filename(checksum), data, filePerm); err != nil {
		if s.logger != nil {
			s.logger.Warn("descriptor cache write failed: " + err.Error())
		}
	}
}

func (s *Store) filename(checksum domain.Checksum) string {
	return filepath.Join(s.root, checksum.String()+".msgpack")
}
