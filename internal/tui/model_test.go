package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"cancerdetect/internal/detection"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/session"
)

type detectorFunc func(ctx context.Context, name string, image plugin.Image) (string, error)

func (f detectorFunc) RunDetection(ctx context.Context, name string, image plugin.Image) (string, error) {
	return f(ctx, name, image)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(Model)
	}
	return m, cmd
}

func typePath(t *testing.T, m Model, path string) Model {
	t.Helper()
	m, _ = press(t, m, "u", path, "enter")
	return m
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("img"), 0o644))
	return path
}

func TestModel_RunShowsResult(t *testing.T) {
	var gotName string
	m := New(context.Background(), detectorFunc(func(ctx context.Context, name string, image plugin.Image) (string, error) {
		gotName = name
		return "Benign", nil
	}), plugin.Listing{Names: []string{"lung", "skin"}})

	m = typePath(t, m, writeImage(t, "mole.JPG"))
	m, _ = press(t, m, "down", "enter")
	require.Equal(t, "skin", m.Session().Snapshot().Plugin)

	m, cmd := press(t, m, "r")
	require.NotNil(t, cmd)
	require.Equal(t, session.StateDispatching, m.Session().State())
	require.Contains(t, m.View(), "Running detection")

	next, _ := m.Update(cmd())
	m = next.(Model)
	require.Equal(t, "skin", gotName)
	require.Equal(t, session.StateResultShown, m.Session().State())
	require.Contains(t, m.View(), "Prediction: Benign")
	require.Contains(t, m.View(), "Detection Result")

	m, _ = press(t, m, "x")
	require.Equal(t, session.StateIdle, m.Session().State())
	require.Equal(t, "skin", m.Session().Snapshot().Plugin)
}

func TestModel_ValidationChecksPluginFirst(t *testing.T) {
	m := New(context.Background(), nil, plugin.Listing{Names: []string{"lung"}})

	m, cmd := press(t, m, "r")
	require.Nil(t, cmd)
	require.Equal(t, session.StateErrorShown, m.Session().State())
	require.Contains(t, m.View(), detection.MsgSelectPlugin)

	m, _ = press(t, m, "x", "enter", "r")
	require.Contains(t, m.View(), detection.MsgUploadImage)
}

func TestModel_RejectsBadImages(t *testing.T) {
	m := New(context.Background(), nil, plugin.Listing{Names: []string{"lung"}})

	m = typePath(t, m, writeImage(t, "scan.gif"))
	require.Equal(t, session.StateErrorShown, m.Session().State())
	require.Contains(t, m.View(), "Unsupported image type")

	m, _ = press(t, m, "x")
	m = typePath(t, m, filepath.Join(t.TempDir(), "missing.png"))
	require.Contains(t, m.View(), "Image not found")
	require.Nil(t, m.Session().Snapshot().Image)
}

func TestModel_PathInputCancel(t *testing.T) {
	m := New(context.Background(), nil, plugin.Listing{Names: []string{"lung"}})

	m, _ = press(t, m, "u", "abc")
	require.Contains(t, m.View(), "abc█")

	m, _ = press(t, m, "esc")
	require.Nil(t, m.Session().Snapshot().Image)
	require.Equal(t, session.StateIdle, m.Session().State())
	require.Contains(t, m.View(), "none")
}

func TestModel_ExecutionErrorModal(t *testing.T) {
	m := New(context.Background(), detectorFunc(func(ctx context.Context, name string, image plugin.Image) (string, error) {
		return "", &detection.ExecutionError{Plugin: name, Err: errors.New("boom")}
	}), plugin.Listing{Names: []string{"lung"}})

	m = typePath(t, m, writeImage(t, "scan.png"))
	m, _ = press(t, m, "enter")
	m, cmd := press(t, m, "r")

	next, _ := m.Update(cmd())
	view := next.(Model).View()
	require.Contains(t, view, "Execution Error")
	require.Contains(t, view, "boom")
}

func TestModel_KeysIgnoredWhileDispatching(t *testing.T) {
	m := New(context.Background(), detectorFunc(func(ctx context.Context, name string, image plugin.Image) (string, error) {
		return "ok", nil
	}), plugin.Listing{Names: []string{"lung"}})

	m = typePath(t, m, writeImage(t, "scan.png"))
	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "r")

	m, cmd := press(t, m, "r")
	require.Nil(t, cmd)
	m, cmd = press(t, m, "q")
	require.Nil(t, cmd)
	require.Equal(t, session.StateDispatching, m.Session().State())
}

func TestModel_Warning(t *testing.T) {
	m := New(context.Background(), nil, plugin.Listing{Names: []string{}, Warning: plugin.WarningUnreadable})
	require.Contains(t, m.View(), plugin.WarningUnreadable)
}
