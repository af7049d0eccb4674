package detection

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cancerdetect/internal/logger"
	"cancerdetect/internal/plugin"
)

// ModuleLoader builds a plugin module for a name.
type ModuleLoader interface {
	Load(ctx context.Context, name string) (any, error)
}

// Dispatcher loads a plugin and calls its Predict entry point, one fresh load per call.
type Dispatcher struct {
	loader ModuleLoader
	logger *logger.Logger
}

// NewDispatcher creates a dispatcher over loader.
func NewDispatcher(loader ModuleLoader, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		loader: loader,
		logger: logger,
	}
}

// RunDetection loads pluginName and runs its prediction on image, synchronously.
// Failures are *ValidationError, *LoadError, *ContractError or *ExecutionError.
func (d *Dispatcher) RunDetection(ctx context.Context, pluginName string, image plugin.Image) (string, error) {
	if pluginName == "" {
		return "", &ValidationError{Message: MsgSelectPlugin}
	}
	if image == nil {
		return "", &ValidationError{Message: MsgUploadImage}
	}

	module, err := d.loader.Load(ctx, pluginName)
	if errors.Is(err, plugin.ErrNoEntryPoint) {
		d.logger.Error("Plugin %s names no Predict entry point: %v", pluginName, err)
		return "", &ContractError{Plugin: pluginName, Err: err}
	}
	if err != nil {
		d.logger.Error("Failed to load plugin %s: %v", pluginName, err)
		return "", &LoadError{Plugin: pluginName, Err: err}
	}
	if closer, ok := module.(io.Closer); ok {
		defer closer.Close()
	}

	predictor, ok := module.(plugin.Predictor)
	if !ok {
		d.logger.Error("Plugin %s does not implement Predict", pluginName)
		return "", &ContractError{Plugin: pluginName}
	}

	result, err := predict(ctx, predictor, image)
	if err != nil {
		d.logger.Warning("Plugin %s failed on %s: %v", pluginName, image.Name(), err)
		return "", &ExecutionError{Plugin: pluginName, Err: err}
	}

	d.logger.Info("Plugin %s predicted %q for %s", pluginName, result, image.Name())
	return result, nil
}

// predict calls Predict and turns a panic into an error carrying the panic text.
func predict(ctx context.Context, p plugin.Predictor, image plugin.Image) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = fmt.Errorf("%v", v)
			}
		}
	}()
	return p.Predict(ctx, image)
}
