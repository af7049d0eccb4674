package drivers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cancerdetect/internal/plugin"
)

// Exec runs an external program per prediction. The image path is appended to Args,
// stdout is the label and stderr becomes the error text on a non-zero exit.
type Exec struct {
	Command string
	Args    []string
	Dir     string
}

// NewExec builds an Exec module from options.command and options.args.
// Relative commands containing a separator resolve against the plugin directory.
func NewExec(ctx context.Context, d *plugin.Descriptor) (any, error) {
	command, ok := d.String("command")
	if !ok || command == "" {
		return nil, fmt.Errorf("%w: exec plugin %s: options.command is required", plugin.ErrNoEntryPoint, d.Name)
	}

	dir := filepath.Dir(d.Path)
	if strings.ContainsRune(command, filepath.Separator) && !filepath.IsAbs(command) {
		command = filepath.Join(dir, command)
	}

	resolved, err := exec.LookPath(command)
	if err != nil {
		return nil, fmt.Errorf("exec plugin %s: %w", d.Name, err)
	}

	return &Exec{
		Command: resolved,
		Args:    d.Strings("args"),
		Dir:     dir,
	}, nil
}

func (e *Exec) Predict(ctx context.Context, image plugin.Image) (string, error) {
	path, cleanup, err := localPath(image)
	if err != nil {
		return "", err
	}
	defer cleanup()

	args := append(append([]string{}, e.Args...), path)
	cmd := exec.CommandContext(ctx, e.Command, args...)
	cmd.Dir = e.Dir
	cmd.Stdin = nil

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", errors.New(msg)
		}
		return "", err
	}

	return strings.TrimSpace(stdout.String()), nil
}

// localPath returns a filesystem path for image, spooling in-memory uploads to a temp file.
func localPath(image plugin.Image) (string, func(), error) {
	if p, ok := image.(plugin.PathImage); ok {
		abs, err := filepath.Abs(p.Path())
		if err != nil {
			return "", nil, err
		}
		return abs, func() {}, nil
	}

	src, err := image.Open()
	if err != nil {
		return "", nil, err
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(image.Name()))
	if err != nil {
		return "", nil, fmt.Errorf("spool upload: %w", err)
	}
	cleanup := func() { os.Remove(tmp.Name()) }

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		cleanup()
		return "", nil, fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("spool upload: %w", err)
	}
	return tmp.Name(), cleanup, nil
}
