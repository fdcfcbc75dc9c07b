// Package shell implements the completion backends. A backend answers
// one classified completion request by combining slot-generic
// resolution (filesystem, environment, PATH) with per-command knowledge
// from the embedded registry and dynamic resolvers that query the
// working environment. Variants differ only in their builtin list and
// in the optional use of the shell's own completion facility.
package shell

import (
	"github.com/tabwise/tabwise/internal/complete"
	"github.com/tabwise/tabwise/internal/logger"
	"github.com/tabwise/tabwise/internal/terrors"
)

// Shell family names accepted by New.
const (
	FamilyGeneric = "generic"
	FamilyBash    = "bash"
	FamilyZsh     = "zsh"
)

// New returns the backend for a detected shell family. An unknown name
// returns the generic backend together with a ConfigMismatchError so
// the caller can warn and continue.
func New(family string, log *logger.Logger) (complete.Backend, error) {
	switch family {
	case "", FamilyGeneric:
		return NewGenericBackend(log), nil
	case FamilyBash:
		return NewBashBackend(log), nil
	case FamilyZsh:
		return NewZshBackend(log), nil
	default:
		return NewGenericBackend(log), terrors.NewConfigMismatch(
			"shell.family", family, "unknown shell family")
	}
}
