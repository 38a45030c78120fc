package repositories

import "errors"

// ErrModelNotFound is returned when no trained state exists for a key
var ErrModelNotFound = errors.New("model state not found")

// ModelStoreInterface defines the narrow contract engines depend on for
// persisting trained state. Implementations own serialization of nothing:
// blobs are opaque engine-encoded bytes.
type ModelStoreInterface interface {
	Load(key string) ([]byte, error)
	Save(key string, blob []byte) error
	Delete(key string) error
}
