// Package intelligence turns model output into timeline data. Every
// result is validated in full; a malformed response yields an error and
// never a partial value.
package intelligence

import (
	"context"
	"errors"

	"github.com/alexanderramin/gantt/internal/domain"
)

// ErrEmptyImage is returned when no image bytes are supplied.
var ErrEmptyImage = errors.New("image is empty")

// ImageParser converts a picture of a schedule into a timeline.
type ImageParser interface {
	ParseImage(ctx context.Context, image []byte) (*domain.TimelineData, error)
}

// BreakdownGenerator proposes a work breakdown for one phase.
type BreakdownGenerator interface {
	GenerateBreakdown(ctx context.Context, phaseLabel string, items []domain.TimelineItem) ([]domain.WBSItem, error)
}
