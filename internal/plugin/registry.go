package plugin

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"cancerdetect/internal/logger"
)

// ReservedPrefix marks files in the plugin directory that are never listed.
const ReservedPrefix = "__"

// WarningUnreadable is shown to the user when the warn-and-continue policy swallows a listing failure.
const WarningUnreadable = "Could not load cancer types."

// ErrDirectoryUnreadable is wrapped by List under PolicyFailFast.
var ErrDirectoryUnreadable = errors.New("plugin directory is unreadable")

// Policy decides what List does when the plugin directory cannot be read.
type Policy string

const (
	PolicyFailFast        Policy = "fail-fast"
	PolicyWarnAndContinue Policy = "warn-and-continue"
)

// ParsePolicy parses a policy name. An empty value yields def.
func ParsePolicy(s string, def Policy) (Policy, error) {
	switch Policy(strings.TrimSpace(strings.ToLower(s))) {
	case "":
		return def, nil
	case PolicyFailFast:
		return PolicyFailFast, nil
	case PolicyWarnAndContinue:
		return PolicyWarnAndContinue, nil
	}
	return "", fmt.Errorf("unknown plugin directory policy %q", s)
}

// Listing is the result of a directory scan.
type Listing struct {
	Names   []string `json:"plugins"`
	Warning string   `json:"warning,omitempty"`
}

// Registry discovers plugin names from a single directory.
type Registry struct {
	dir    string
	suffix string
	policy Policy
	logger *logger.Logger
}

// NewRegistry returns a registry scanning dir for files ending in suffix.
func NewRegistry(dir, suffix string, policy Policy, logger *logger.Logger) *Registry {
	return &Registry{
		dir:    dir,
		suffix: suffix,
		policy: policy,
		logger: logger,
	}
}

func (r *Registry) Dir() string { return r.dir }

func (r *Registry) Suffix() string { return r.suffix }

func (r *Registry) Policy() Policy { return r.policy }

// List returns the plugin names in ascending order. The entry point contract is not checked here.
func (r *Registry) List() (Listing, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if r.policy == PolicyWarnAndContinue {
			r.logger.Warning("Could not list plugins in %s: %v", r.dir, err)
			return Listing{Names: []string{}, Warning: WarningUnreadable}, nil
		}
		return Listing{}, fmt.Errorf("%w: %s: %v", ErrDirectoryUnreadable, r.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, r.suffix) || strings.HasPrefix(name, ReservedPrefix) {
			continue
		}
		if base := strings.TrimSuffix(name, r.suffix); base != "" {
			names = append(names, base)
		}
	}
	sort.Strings(names)

	return Listing{Names: names}, nil
}
