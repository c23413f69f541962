package tabgen

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// WithPrefix overrides the namespace prefix derived from the program name.
// The override is sanitized exactly like the default, so scripts for
// differently named programs can share one identifier namespace.
func WithPrefix(prefix string) ConfigureGeneratorFunc {
	return func(generator *Generator, err *error) {
		generator.prefix = prefix
	}
}

// WithPreamble injects shell text into the emitted script between the
// dispatch functions and the registration line. Functions referenced by
// custom marker kinds are expected to be defined here.
func WithPreamble(preamble string) ConfigureGeneratorFunc {
	return func(generator *Generator, err *error) {
		generator.preamble = preamble
	}
}

// WithMarkerFunction maps a DynamicMarker kind to the shell function the
// emitted script should call for it. Registering a built-in kind re-points
// it.
func WithMarkerFunction(kind, shellFn string) ConfigureGeneratorFunc {
	return func(generator *Generator, err *error) {
		if kind == "" || shellFn == "" {
			*err = fmt.Errorf(FmtErrorWithString, ErrInvalidMarkerFunction, "kind and function name must not be empty")
			return
		}
		generator.markerFns[kind] = shellFn
	}
}

// WithLogger replaces the diagnostics logger, see Generator.SetLogger.
func WithLogger(logger *logrus.Logger) ConfigureGeneratorFunc {
	return func(generator *Generator, err *error) {
		generator.SetLogger(logger)
	}
}
