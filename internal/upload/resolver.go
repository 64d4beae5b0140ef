package upload

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"any2text/internal/api"
)

// Backend is the slice of the API client the resolver needs.
type Backend interface {
	Presign(ctx context.Context, fileName, contentType string) (api.PresignResult, error)
	PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error
}

// Resolver turns local bytes into a durable storage key via the
// two-phase presign + direct PUT protocol. It holds no state between
// calls; a failed sequence is retried from scratch by the caller.
type Resolver struct {
	Backend Backend
}

// Resolve uploads data and returns the file key job creation needs. The
// bytes are durably stored before this returns without error.
func (r Resolver) Resolve(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	if strings.TrimSpace(contentType) == "" {
		contentType = DetectContentType(fileName)
	}

	presigned, err := r.Backend.Presign(ctx, fileName, contentType)
	if err != nil {
		return "", err
	}
	if err := r.Backend.PutObject(ctx, presigned.UploadURL, contentType, data); err != nil {
		return "", err
	}
	return presigned.FileKey, nil
}

// DetectContentType guesses from the file extension and falls back to a
// generic binary type, matching what the backend expects for unknowns.
func DetectContentType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	switch ext {
	case ".mp3":
		return "audio/mpeg"
	case ".m4a":
		return "audio/mp4"
	case ".wav":
		return "audio/wav"
	case ".mp4":
		return "video/mp4"
	}
	return "application/octet-stream"
}
