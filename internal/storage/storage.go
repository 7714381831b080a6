package storage

import (
	"context"
	"io"
)

// Uploader archives original uploaded documents. The database keeps the
// extracted text; the object store keeps the bytes.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (storedPath string, err error)
}
