package storage

import (
	"context"
	"io"
)

// ContentTypeJSON is the content type of report snapshots.
const ContentTypeJSON = "application/json"

// UploadResult describes a stored object. Location stays empty when the
// bucket has no public URL configured.
type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"url,omitempty"`
	ETag     string `json:"etag,omitempty"`
}

// FileUploader stores report exports in object storage.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	GetPublicURL(key string) string
}
