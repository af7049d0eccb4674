package drivers

import (
	"context"
	"fmt"

	"cancerdetect/internal/plugin"
)

// Static answers every prediction with the label configured in the descriptor.
type Static struct {
	Label string
}

// NewStatic builds a Static module from options.label.
func NewStatic(ctx context.Context, d *plugin.Descriptor) (any, error) {
	label, ok := d.String("label")
	if !ok || label == "" {
		return nil, fmt.Errorf("%w: static plugin %s: options.label is required", plugin.ErrNoEntryPoint, d.Name)
	}
	return &Static{Label: label}, nil
}

func (s *Static) Predict(ctx context.Context, image plugin.Image) (string, error) {
	return s.Label, nil
}
