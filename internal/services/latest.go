package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/go-minitwit/internal/repo"
)

// NoLatest is reported by LatestService.Read before any command was recorded.
const NoLatest int64 = -1

// LatestService tracks the simulator's latest processed command number.
type LatestService struct {
	DB *gorm.DB
}

// Record stores n as the latest command. Values are not compared with the
// previous one; the last writer wins.
func (s *LatestService) Record(ctx context.Context, n int64) error {
	tr := otel.Tracer("services/LatestService")
	ctx, span := tr.Start(ctx, "Record", trace.WithAttributes(attribute.Int64("latest", n)))
	defer span.End()

	return repo.UpsertLatest(ctx, s.DB, n)
}

// Read returns the latest recorded command, or NoLatest.
func (s *LatestService) Read(ctx context.Context) (int64, error) {
	v, err := repo.GetLatest(ctx, s.DB)
	if err != nil {
		if isNotFound(err) {
			return NoLatest, nil
		}
		return 0, err
	}
	return v, nil
}
