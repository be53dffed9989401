// Package storage persists paper documents behind a small interface with
// local-filesystem and S3 backends.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage stores and retrieves paper documents
type Storage interface {
	// Save stores a document for the given paper and returns its storage path
	Save(ctx context.Context, paperID uuid.UUID, filename string, data io.Reader) (string, error)

	// Open retrieves a previously stored document by storage path
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes a document by storage path
	Delete(ctx context.Context, storagePath string) error
}

// Type selects the storage backend
type Type string

const (
	TypeLocal Type = "local"
	TypeS3    Type = "s3"
)

// Config holds configuration for the document storage backends
type Config struct {
	Type         Type
	LocalPath    string // for local storage
	S3Bucket     string // for S3 storage
	S3Region     string // for S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// New creates a storage instance for the configured backend
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocal(cfg.LocalPath)
	case TypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("S3 bucket is required for s3 storage")
		}
		return NewS3(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// documentPath builds a unique storage path for a paper's document. The
// paper id prefix keeps one document per paper and shards by the first two
// hex characters.
func documentPath(paperID uuid.UUID, filename string) string {
	name := filepath.Base(filename)
	name = strings.ReplaceAll(name, " ", "_")

	return fmt.Sprintf("%s/%s_%s", paperID.String()[:2], paperID.String(), name)
}

// contentType maps a document filename to its MIME type
func contentType(filename string) string {
	switch filepath.Ext(filename) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	case ".ps":
		return "application/postscript"
	default:
		return "application/octet-stream"
	}
}
