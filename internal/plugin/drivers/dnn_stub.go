//go:build !gocv
// +build !gocv

package drivers

import (
	"context"
	"errors"

	"cancerdetect/internal/plugin"
)

// NewDNN fails when the binary is built without the gocv tag.
func NewDNN(ctx context.Context, d *plugin.Descriptor) (any, error) {
	return nil, errors.New("gocv build tag is not enabled")
}
