package handlers

import (
	"net/http/httptest"
	"strings"

	"finsight/internal/repositories"

	"github.com/labstack/echo/v4"
)

// memoryStore is an in-memory model store for handler tests
type memoryStore struct {
	blobs map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{blobs: map[string][]byte{}}
}

func (s *memoryStore) Load(key string) ([]byte, error) {
	blob, ok := s.blobs[key]
	if !ok {
		return nil, repositories.ErrModelNotFound
	}
	return blob, nil
}

func (s *memoryStore) Save(key string, blob []byte) error {
	s.blobs[key] = blob
	return nil
}

func (s *memoryStore) Delete(key string) error {
	delete(s.blobs, key)
	return nil
}

// newJSONContext builds an echo context carrying a JSON body
func newJSONContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}
