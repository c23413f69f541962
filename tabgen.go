// Copyright 2024-2026, the tabgen authors. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package tabgen generates shell tab-completion scripts from a declarative
// description of a command-line interface.
//
// A CLI is described as a tree of CommandNode values holding flags,
// positional arguments and subcommands. Positional arguments complete
// either against literal subcommand names or against a DynamicMarker,
// which defers to the shell at completion time (file and directory
// completion are built in, other kinds can be registered per Generator).
//
// A Generator walks the tree exactly once, derives one Vocabulary per node
// and serializes the result into a self-contained script: the emitted text
// performs all completion logic natively and never calls back into the
// generating program. Output is deterministic, so identical trees always
// produce byte-identical scripts.
//
// Only the bash dialect ships with the package. Additional dialects can be
// hooked in through RegisterEmitter.
package tabgen

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// New creates a Generator for one shell dialect and one program. The shell
// must name a registered emitter; unknown dialects fail here, before any
// tree is touched. The program name is reduced to its base name and becomes
// both the registration target and the default namespace prefix.
func New(shell, programName string, configs ...ConfigureGeneratorFunc) (*Generator, error) {
	emitter, err := emitterFor(shell)
	if err != nil {
		return nil, err
	}

	if programName == "" {
		return nil, ErrEmptyProgramName
	}
	programName = filepath.Base(programName)
	if programName == "." || programName == string(filepath.Separator) {
		return nil, ErrEmptyProgramName
	}

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	generator := &Generator{
		shell:       shell,
		programName: programName,
		markerFns:   map[string]string{},
		emitter:     emitter,
		logger:      logger,
	}

	for _, config := range configs {
		config(generator, &err)
		if err != nil {
			return nil, err
		}
	}

	return generator, nil
}

// Generate validates the tree, builds its vocabularies and emits the
// completion script in one call.
func (g *Generator) Generate(root *CommandNode) (string, error) {
	result, err := g.Build(root)
	if err != nil {
		return "", err
	}

	return g.Emit(result)
}

// Build validates the tree and derives its vocabularies without emitting
// any text. The result can be inspected or handed to Emit.
func (g *Generator) Build(root *CommandNode) (*BuildResult, error) {
	if err := Validate(root); err != nil {
		return nil, err
	}

	return newVocabBuilder(g).build(root)
}

// Emit serializes a previously built result for the generator's shell.
func (g *Generator) Emit(result *BuildResult) (string, error) {
	return g.emitter.Emit(g.programName, result, g.preamble)
}

// Shell returns the dialect the generator emits.
func (g *Generator) Shell() string {
	return g.shell
}

// ProgramName returns the base name the script will be registered against.
func (g *Generator) ProgramName() string {
	return g.programName
}

// SetLogger replaces the diagnostics logger. Nil loggers are ignored.
func (g *Generator) SetLogger(logger *logrus.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// Logger returns the diagnostics logger in use.
func (g *Generator) Logger() *logrus.Logger {
	return g.logger
}

// Generate is a convenience wrapper building a one-shot Generator.
func Generate(root *CommandNode, shell, programName string, configs ...ConfigureGeneratorFunc) (string, error) {
	generator, err := New(shell, programName, configs...)
	if err != nil {
		return "", err
	}

	return generator.Generate(root)
}
