package session

import (
	"errors"
	"sync"
	"time"

	"cancerdetect/internal/detection"
	"cancerdetect/internal/plugin"
)

// State is the position of a shell in the detection workflow.
type State string

const (
	StateIdle           State = "idle"
	StateImageSelected  State = "image_selected"
	StatePluginSelected State = "plugin_selected"
	StateDispatching    State = "dispatching"
	StateResultShown    State = "result_shown"
	StateErrorShown     State = "error_shown"
)

// ErrBusy is returned by Begin while a detection of the same session is still running.
var ErrBusy = errors.New("a detection is already running")

// ValidationOrder selects which missing input is reported first.
type ValidationOrder int

const (
	// ImageFirst reports a missing image before a missing plugin (web dashboard).
	ImageFirst ValidationOrder = iota
	// PluginFirst reports a missing plugin before a missing image (desktop window).
	PluginFirst
)

// Session is the state owned by one shell instance: one browser session or one desktop window.
type Session struct {
	ID string

	mu        sync.Mutex
	order     ValidationOrder
	state     State
	image     plugin.Image
	plugin    string
	result    string
	err       error
	updatedAt time.Time
}

// New creates an idle session.
func New(id string, order ValidationOrder) *Session {
	return &Session{
		ID:        id,
		order:     order,
		state:     StateIdle,
		updatedAt: time.Now(),
	}
}

// SelectImage stores the user's image. Only AllowedExtensions are accepted.
func (s *Session) SelectImage(img plugin.Image) error {
	if img == nil || !plugin.IsAllowedImage(img.Name()) {
		return &detection.ValidationError{Message: "Unsupported image type. Allowed: .png, .jpg, .jpeg"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDispatching {
		return ErrBusy
	}
	s.image = img
	s.settle()
	return nil
}

// SelectPlugin stores the chosen plugin name. An empty name clears the selection.
func (s *Session) SelectPlugin(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDispatching {
		return ErrBusy
	}
	s.plugin = name
	s.settle()
	return nil
}

// Begin checks that both inputs are present and moves to Dispatching.
// It returns the inputs to pass to the dispatcher.
func (s *Session) Begin() (string, plugin.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateDispatching {
		return "", nil, ErrBusy
	}
	if err := s.validate(); err != nil {
		return "", nil, err
	}

	s.state = StateDispatching
	s.result, s.err = "", nil
	s.touch()
	return s.plugin, s.image, nil
}

func (s *Session) validate() error {
	missingImage := s.image == nil
	missingPlugin := s.plugin == ""

	if s.order == PluginFirst && missingPlugin {
		return &detection.ValidationError{Message: detection.MsgSelectPlugin}
	}
	if missingImage {
		return &detection.ValidationError{Message: detection.MsgUploadImage}
	}
	if missingPlugin {
		return &detection.ValidationError{Message: detection.MsgSelectPlugin}
	}
	return nil
}

// Finish records the dispatcher outcome.
func (s *Session) Finish(result string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = StateErrorShown
		s.result, s.err = "", err
	} else {
		s.state = StateResultShown
		s.result, s.err = result, nil
	}
	s.touch()
}

// Fail shows err without a dispatch, used for validation failures caught by the shell.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateDispatching {
		return
	}
	s.state = StateErrorShown
	s.result, s.err = "", err
	s.touch()
}

// Acknowledge dismisses a shown result or error and returns to Idle. Selections are kept.
func (s *Session) Acknowledge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateResultShown || s.state == StateErrorShown {
		s.state = StateIdle
		s.result, s.err = "", nil
		s.touch()
	}
}

// settle derives the selection state after an input changed.
func (s *Session) settle() {
	switch {
	case s.plugin != "" && s.image != nil:
		s.state = StatePluginSelected
	case s.image != nil:
		s.state = StateImageSelected
	default:
		s.state = StateIdle
	}
	s.result, s.err = "", nil
	s.touch()
}

func (s *Session) touch() {
	s.updatedAt = time.Now()
}

// Snapshot is a point-in-time copy of a session for rendering.
type Snapshot struct {
	State     State
	Image     plugin.Image
	Plugin    string
	Result    string
	Err       error
	UpdatedAt time.Time
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		State:     s.state,
		Image:     s.image,
		Plugin:    s.plugin,
		Result:    s.result,
		Err:       s.err,
		UpdatedAt: s.updatedAt,
	}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

func (s *Session) dispatching() bool {
	return s.State() == StateDispatching
}
