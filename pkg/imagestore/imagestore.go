// Package imagestore holds uploaded profile pictures and hands back opaque
// references, replacing the inline base64 embedding the web client used to
// do.
package imagestore

import (
	"errors"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize caps uploads at 5 MiB.
const MaxImageSize = 5 * 1024 * 1024

var (
	ErrTooLarge = errors.New("image exceeds the 5MB limit")
	ErrNotImage = errors.New("uploaded file is not an image")
	ErrNotFound = errors.New("image not found")
)

type Image struct {
	ID          uuid.UUID
	ContentType string
	Data        []byte
}

// Store is an in-memory image store. A production deployment would back this
// with object storage behind the same interface.
type Store struct {
	mu     sync.RWMutex
	images map[uuid.UUID]*Image
}

func New() *Store {
	return &Store{images: make(map[uuid.UUID]*Image)}
}

// Put validates and stores an image, returning its reference.
func (s *Store) Put(data []byte) (*Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrNotImage
	}

	img := &Image{
		ID:          uuid.New(),
		ContentType: mtype.String(),
		Data:        data,
	}

	s.mu.Lock()
	s.images[img.ID] = img
	s.mu.Unlock()

	return img, nil
}

func (s *Store) Get(id uuid.UUID) (*Image, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images[id]
	if !ok {
		return nil, ErrNotFound
	}
	return img, nil
}

// Size reports the stored byte size for a reference, zero when absent.
func (s *Store) Size(id uuid.UUID) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if img, ok := s.images[id]; ok {
		return int64(len(img.Data))
	}
	return 0
}
