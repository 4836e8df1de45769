package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/technova/portfolio-api/internal/storage"
)

// ObjectStorage is the part of the object store client the backend needs.
// It is satisfied by *storage.MinIOStorage.
type ObjectStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	DownloadFile(ctx context.Context, key string) (io.ReadCloser, error)
}

// MinIOBackend keeps the JSON document as one object in a bucket. A PUT
// replaces the object as a whole.
type MinIOBackend struct {
	objects ObjectStorage
	key     string
}

func NewMinIOBackend(objects ObjectStorage, key string) *MinIOBackend {
	if key == "" {
		key = "db.json"
	}
	return &MinIOBackend{objects: objects, key: key}
}

func (m *MinIOBackend) Name() string { return "minio" }

func (m *MinIOBackend) Read(ctx context.Context) (*Document, error) {
	rc, err := m.objects.DownloadFile(ctx, m.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNoDocument
		}
		return nil, err
	}
	defer rc.Close()
	var doc Document
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.key, err)
	}
	return &doc, nil
}

func (m *MinIOBackend) Write(ctx context.Context, doc *Document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return m.objects.UploadFile(ctx, m.key, bytes.NewReader(b), int64(len(b)), "application/json")
}
