package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/soccer-tournament/storage"
	"github.com/google/uuid"
)

// ExportService uploads JSON report snapshots to object storage.
type ExportService interface {
	ExportJSON(ctx context.Context, kind string, payload interface{}) (*storage.UploadResult, error)
}

type exportService struct {
	uploader storage.FileUploader
	logger   *slog.Logger
	now      func() time.Time
}

// NewExportService accepts a nil uploader; exports then fail with
// ErrFeatureDisabled.
func NewExportService(uploader storage.FileUploader, logger *slog.Logger) ExportService {
	return &exportService{uploader: uploader, logger: logger, now: time.Now}
}

func (s *exportService) ExportJSON(ctx context.Context, kind string, payload interface{}) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("%w: object storage", ErrFeatureDisabled)
	}

	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s export: %w", kind, err)
	}

	key := exportKey(kind, s.now(), uuid.New())
	result, err := s.uploader.Upload(ctx, key, storage.ContentTypeJSON, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	s.logger.InfoContext(ctx, "Report exported",
		slog.String("kind", kind),
		slog.String("key", result.Key),
		slog.Int("bytes", len(body)),
	)
	return result, nil
}

// exportKey lays exports out by kind and day: exports/<kind>/2025/11/05/<id>.json
func exportKey(kind string, at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("exports/%s/%s/%s.json", kind, at.UTC().Format("2006/01/02"), id.String())
}
