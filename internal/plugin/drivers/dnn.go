//go:build gocv
// +build gocv

package drivers

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"cancerdetect/internal/plugin"
)

// DNN classifies an image with an OpenCV DNN network and returns the top label.
type DNN struct {
	net        gocv.Net
	labels     []string
	size       int
	scale      float64
	mean       []float64
	swapRB     bool
	threshold  float64
	belowLabel string
}

// NewDNN loads options.model (and optional options.config) into an OpenCV network.
func NewDNN(ctx context.Context, d *plugin.Descriptor) (any, error) {
	model, ok := d.String("model")
	if !ok || model == "" {
		return nil, fmt.Errorf("%w: dnn plugin %s: options.model is required", plugin.ErrNoEntryPoint, d.Name)
	}
	model = resolve(d, model)
	if _, err := os.Stat(model); err != nil {
		return nil, fmt.Errorf("model file not found: %s", model)
	}

	config := d.StringDefault("config", "")
	if config != "" {
		config = resolve(d, config)
		if _, err := os.Stat(config); err != nil {
			return nil, fmt.Errorf("config file not found: %s", config)
		}
	}

	labels := d.Strings("labels")
	if len(labels) == 0 {
		return nil, fmt.Errorf("dnn plugin %s: options.labels is required", d.Name)
	}

	net := gocv.ReadNet(model, config)
	if net.Empty() {
		return nil, fmt.Errorf("failed to load network")
	}
	errBackend := net.SetPreferableBackend(gocv.NetBackendDefault)
	errTarget := net.SetPreferableTarget(gocv.NetTargetCPU)
	if errBackend != nil || errTarget != nil {
		net.Close()
		return nil, fmt.Errorf("failed to set preferable backend or target")
	}

	mean := d.Floats("mean")
	for len(mean) < 3 {
		mean = append(mean, 0)
	}

	return &DNN{
		net:        net,
		labels:     labels,
		size:       d.Int("size", 224),
		scale:      d.Float("scale", 1.0/255),
		mean:       mean,
		swapRB:     d.Bool("swap_rb", true),
		threshold:  d.Float("threshold", 0),
		belowLabel: d.StringDefault("below_threshold", "Inconclusive"),
	}, nil
}

func (n *DNN) Predict(ctx context.Context, img plugin.Image) (string, error) {
	data, err := plugin.ReadAll(img)
	if err != nil {
		return "", err
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return "", fmt.Errorf("decoded image is empty")
	}

	blob := gocv.BlobFromImage(mat, n.scale, image.Pt(n.size, n.size),
		gocv.NewScalar(n.mean[0], n.mean[1], n.mean[2], 0), n.swapRB, false)
	defer blob.Close()

	n.net.SetInput(blob, "")
	output := n.net.Forward("")
	defer output.Close()

	scores := output.Reshape(1, 1)
	defer scores.Close()

	best, bestScore := -1, float32(0)
	for i := 0; i < scores.Cols(); i++ {
		if v := scores.GetFloatAt(0, i); best < 0 || v > bestScore {
			best, bestScore = i, v
		}
	}

	if best < 0 || best >= len(n.labels) {
		return "", fmt.Errorf("network returned class %d but only %d labels are configured", best, len(n.labels))
	}
	if float64(bestScore) < n.threshold {
		return n.belowLabel, nil
	}
	return n.labels[best], nil
}

// Close releases the network.
func (n *DNN) Close() error {
	return n.net.Close()
}

func resolve(d *plugin.Descriptor, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(d.Path), p)
}
