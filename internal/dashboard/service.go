package dashboard

import (
	"context"

	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
)

type SnapshotSource interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
}

// Service is the read-only query surface polled by the dashboard page.
type Service struct {
	source SnapshotSource
}

func NewService(source SnapshotSource) *Service {
	return &Service{source: source}
}

func (s *Service) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	return s.source.Snapshot(ctx)
}
