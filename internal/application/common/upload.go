package common

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"agencydesk/internal/shared/errors"
)

// MaxUploadSize caps uploaded files at 10 MiB.
const MaxUploadSize int64 = 10 << 20

// BlobStore keeps uploaded bytes and hands back an opaque reference that is
// recorded as the file URL.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// File is an uploaded file as received from the transport.
type File struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// Validate rejects empty and oversized files.
func (f File) Validate() error {
	switch {
	case f.Reader == nil || strings.TrimSpace(f.Name) == "":
		return errors.NewValidationError("Validation failed", "file is required")
	case f.Size <= 0:
		return errors.NewValidationError("Validation failed", "file is empty")
	case f.Size > MaxUploadSize:
		return errors.NewValidationError("Validation failed",
			fmt.Sprintf("file exceeds the %d MB limit", MaxUploadSize>>20))
	}
	return nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// BlobKey builds a storage key "<prefix>/<id>/<sanitized name>".
func BlobKey(prefix, id, name string) string {
	base := unsafeKeyChars.ReplaceAllString(path.Base(name), "_")
	return path.Join(prefix, id, base)
}
