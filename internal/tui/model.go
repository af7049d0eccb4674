// Package tui is the desktop shell: a terminal window with the upload, cancer type and run controls.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cancerdetect/internal/detection"
	"cancerdetect/internal/plugin"
	"cancerdetect/internal/session"
)

// Detector runs one detection. Implemented by *detection.Dispatcher.
type Detector interface {
	RunDetection(ctx context.Context, pluginName string, image plugin.Image) (string, error)
}

type mode int

const (
	modeBrowse mode = iota
	modePath
)

// Model is the bubbletea model of the desktop window.
type Model struct {
	ctx      context.Context
	session  *session.Session
	detector Detector
	plugins  []string
	warning  string

	cursor int
	mode   mode
	input  string

	width  int
	height int
}

// New creates the window model. The listing is read once, at startup.
func New(ctx context.Context, detector Detector, listing plugin.Listing) Model {
	return Model{
		ctx:      ctx,
		session:  session.New("desktop", session.PluginFirst),
		detector: detector,
		plugins:  listing.Names,
		warning:  listing.Warning,
	}
}

// Session exposes the window's session state.
func (m Model) Session() *session.Session { return m.session }

// detectionDoneMsg carries the dispatcher outcome back to Update.
type detectionDoneMsg struct {
	result string
	err    error
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case detectionDoneMsg:
		m.session.Finish(msg.result, msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		switch m.session.State() {
		case session.StateDispatching:
			return m, nil
		case session.StateResultShown, session.StateErrorShown:
			m.session.Acknowledge()
			return m, nil
		}

		if m.mode == modePath {
			return m.updatePath(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.plugins)-1 {
			m.cursor++
		}

	case "enter", " ":
		if len(m.plugins) > 0 {
			m.session.SelectPlugin(m.plugins[m.cursor])
		}

	case "u":
		m.mode = modePath
		m.input = ""

	case "r":
		return m, m.run()
	}
	return m, nil
}

func (m Model) updatePath(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input = ""

	case tea.KeyEnter:
		m.mode = modeBrowse
		path := strings.Trim(strings.TrimSpace(m.input), `"'`)
		m.input = ""
		if path == "" {
			return m, nil
		}
		if err := m.selectImage(path); err != nil {
			m.session.Fail(err)
		}

	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}

	case tea.KeyRunes, tea.KeySpace:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m Model) selectImage(path string) error {
	if !plugin.IsAllowedImage(path) {
		return &detection.ValidationError{Message: "Unsupported image type. Allowed: .png, .jpg, .jpeg"}
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &detection.ValidationError{Message: fmt.Sprintf("Image not found: %s", path)}
	}
	return m.session.SelectImage(plugin.PathImage(path))
}

// run starts a detection. Validation failures open the error modal without dispatching.
func (m Model) run() tea.Cmd {
	name, image, err := m.session.Begin()
	if err != nil {
		m.session.Fail(err)
		return nil
	}

	ctx, detector := m.ctx, m.detector
	return func() tea.Msg {
		result, err := detector.RunDetection(ctx, name, image)
		return detectionDoneMsg{result: result, err: err}
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("240"))
	chosenStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46"))
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 3)
)

func (m Model) View() string {
	snap := m.session.Snapshot()

	switch snap.State {
	case session.StateResultShown:
		return m.modal("Detection Result", "Prediction: "+snap.Result, lipgloss.Color("46"))
	case session.StateErrorShown:
		return m.modal(detection.Title(snap.Err), snap.Err.Error(), lipgloss.Color("196"))
	}

	header := titleStyle.Render("Epigenetic Cancer Detection")

	image := "none"
	if snap.Image != nil {
		image = snap.Image.Name()
	}
	imageLine := labelStyle.Render("Image: ") + image
	if m.mode == modePath {
		imageLine = labelStyle.Render("Image path: ") + m.input + "█"
	}

	rows := []string{labelStyle.Render("Cancer type:")}
	if m.warning != "" {
		rows = append(rows, warningStyle.Render("  "+m.warning))
	} else if len(m.plugins) == 0 {
		rows = append(rows, labelStyle.Render("  no plugins installed"))
	}
	for i, name := range m.plugins {
		line := "  " + name
		if name == snap.Plugin {
			line = chosenStyle.Render("✓ " + name)
		}
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		rows = append(rows, line)
	}

	status := ""
	if snap.State == session.StateDispatching {
		status = warningStyle.Render("Running detection...")
	}

	footer := labelStyle.Render("Controls: [u] Upload Image | [↑↓] Navigate | [Enter] Select | [r] Run Detection | [q] Quit")
	if m.mode == modePath {
		footer = labelStyle.Render("Type the image path: [Enter] Accept | [Esc] Cancel")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header, "",
		imageLine, "",
		lipgloss.JoinVertical(lipgloss.Left, rows...), "",
		status,
		footer,
	)
}

func (m Model) modal(title, message string, color lipgloss.Color) string {
	box := modalStyle.BorderForeground(color).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(color).Render(title),
		"",
		message,
		"",
		labelStyle.Render("Press any key to continue"),
	))
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

// Run opens the window and blocks until the user quits.
func Run(ctx context.Context, detector Detector, listing plugin.Listing) error {
	program := tea.NewProgram(New(ctx, detector, listing), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("desktop window failed: %w", err)
	}
	return nil
}
