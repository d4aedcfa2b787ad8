package render

import (
	"context"
	"errors"

	"github.com/dtroode/quizzzy/internal/model"
)

var _ model.Renderer = Fanout(nil)

// Fanout hands every frame to each renderer in turn and joins their errors.
type Fanout []model.Renderer

func (f Fanout) Render(ctx context.Context, frame model.Frame) error {
	var errs []error
	for _, r := range f {
		if err := r.Render(ctx, frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
