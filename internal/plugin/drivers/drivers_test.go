package drivers

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"cancerdetect/internal/plugin"
)

func descriptor(t *testing.T, dir, name, content string) *plugin.Descriptor {
	t.Helper()
	path := filepath.Join(dir, name+".toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	desc, err := plugin.ParseDescriptor(name, []byte(content))
	require.NoError(t, err)
	desc.Path = path
	return desc
}

func script(t *testing.T, dir, name, body string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+body+"\n"), 0755))
}

func TestBuiltin(t *testing.T) {
	require.Equal(t, []string{"dnn", "exec", "static"}, Builtin().Names())
}

func TestStatic(t *testing.T) {
	dir := t.TempDir()
	desc := descriptor(t, dir, "lung", "driver = \"static\"\n[options]\nlabel = \"Benign\"\n")

	module, err := NewStatic(context.Background(), desc)
	require.NoError(t, err)

	predictor, ok := module.(plugin.Predictor)
	require.True(t, ok)
	result, err := predictor.Predict(context.Background(), plugin.PathImage("scan.png"))
	require.NoError(t, err)
	require.Equal(t, "Benign", result)
}

func TestStatic_RequiresLabel(t *testing.T) {
	desc := descriptor(t, t.TempDir(), "lung", "driver = \"static\"\n")

	_, err := NewStatic(context.Background(), desc)
	require.ErrorContains(t, err, "options.label is required")
	require.ErrorIs(t, err, plugin.ErrNoEntryPoint)
}

func TestExec_PathImage(t *testing.T) {
	dir := t.TempDir()
	script(t, dir, "classify.sh", `echo "$1 $(basename "$2")"`)
	desc := descriptor(t, dir, "skin", "driver = \"exec\"\n[options]\ncommand = \"./classify.sh\"\nargs = [\"--label\"]\n")

	module, err := NewExec(context.Background(), desc)
	require.NoError(t, err)

	image := filepath.Join(t.TempDir(), "mole.jpg")
	require.NoError(t, os.WriteFile(image, []byte("jpeg"), 0644))

	result, err := module.(plugin.Predictor).Predict(context.Background(), plugin.PathImage(image))
	require.NoError(t, err)
	require.Equal(t, "--label mole.jpg", result)
}

func TestExec_UploadedImageIsSpooled(t *testing.T) {
	dir := t.TempDir()
	script(t, dir, "classify.sh", `cat "$1"`)
	desc := descriptor(t, dir, "skin", "driver = \"exec\"\n[options]\ncommand = \"./classify.sh\"\n")

	module, err := NewExec(context.Background(), desc)
	require.NoError(t, err)

	upload := &plugin.UploadedImage{Filename: "mole.png", Data: []byte("Suspicious\n")}
	result, err := module.(plugin.Predictor).Predict(context.Background(), upload)
	require.NoError(t, err)
	require.Equal(t, "Suspicious", result)
}

func TestExec_FailureCarriesStderr(t *testing.T) {
	dir := t.TempDir()
	script(t, dir, "classify.sh", `echo "model weights missing" >&2; exit 3`)
	desc := descriptor(t, dir, "skin", "driver = \"exec\"\n[options]\ncommand = \"./classify.sh\"\n")

	module, err := NewExec(context.Background(), desc)
	require.NoError(t, err)

	_, err = module.(plugin.Predictor).Predict(context.Background(), plugin.PathImage(filepath.Join(dir, "skin.toml")))
	require.EqualError(t, err, "model weights missing")
}

func TestExec_MissingCommand(t *testing.T) {
	desc := descriptor(t, t.TempDir(), "skin", "driver = \"exec\"\n[options]\ncommand = \"./nope.sh\"\n")

	_, err := NewExec(context.Background(), desc)
	require.Error(t, err)

	desc = descriptor(t, t.TempDir(), "skin", "driver = \"exec\"\n")
	_, err = NewExec(context.Background(), desc)
	require.ErrorContains(t, err, "options.command is required")
	require.ErrorIs(t, err, plugin.ErrNoEntryPoint)
}
