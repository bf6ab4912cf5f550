package service

import (
	"context"
	"io"
)

// Uploader stores a binary blob and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
