package services

import (
	"sync"

	"finsight/internal/repositories"
)

// fakeModelStore is an in-memory ModelStoreInterface for engine tests
type fakeModelStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	loadErr error
	saveErr error
}

func newFakeModelStore() *fakeModelStore {
	return &fakeModelStore{blobs: map[string][]byte{}}
}

func (s *fakeModelStore) Load(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	blob, ok := s.blobs[key]
	if !ok {
		return nil, repositories.ErrModelNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

func (s *fakeModelStore) Save(key string, blob []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	stored := make([]byte, len(blob))
	copy(stored, blob)
	s.blobs[key] = stored
	return nil
}

func (s *fakeModelStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}
