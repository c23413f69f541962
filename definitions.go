package tabgen

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/veldran/tabgen/types/orderedmap"
)

// ConfigureGeneratorFunc is used when defining Generator options
type ConfigureGeneratorFunc func(generator *Generator, err *error)

// ConfigureCommandFunc is used when defining CommandNode options
type ConfigureCommandFunc func(command *CommandNode)

// choiceKind tags the two Choice variants. The zero value marks an
// uninitialized Choice, which the validator rejects.
type choiceKind string

const (
	choiceLiteral choiceKind = "literal"
	choiceDynamic choiceKind = "dynamic"
	choiceEmpty   choiceKind = ""
)

// Choice is a single completion candidate for a positional argument: either
// a literal subcommand name or a DynamicMarker. Construct with Literal or
// Dynamic; the zero value is invalid.
type Choice struct {
	kind    choiceKind
	literal string
	marker  *DynamicMarker
}

// DynamicMarker requests shell-computed completion (file paths, directories,
// or any caller-registered kind) in place of a literal word list.
// A required marker sorts ahead of its sibling choices.
type DynamicMarker struct {
	Kind     string
	Required bool
}

// Built-in DynamicMarker kinds. Additional kinds are registered per
// Generator with WithMarkerFunction.
const (
	KindFile      = "file"
	KindDirectory = "directory"
)

// PositionalArg describes one positional argument of a command. Dest is only
// used in diagnostics. An empty Choices list means the argument is
// uncompletable and contributes nothing to the emitted vocabulary.
type PositionalArg struct {
	Dest    string
	Choices []Choice
}

// CommandNode is one command in the tree being completed. Flags holds the
// node's optional flags in declaration order without duplicates. Children
// maps literal subcommand names to child nodes; every literal Choice of a
// positional must have a matching entry.
type CommandNode struct {
	Name        string
	Positionals []*PositionalArg
	Flags       []string
	Children    *orderedmap.OrderedMap[string, *CommandNode]
}

// Vocabulary is the per-node build product: everything the emitted script
// needs to complete words after this node has been typed.
type Vocabulary struct {
	// PrefixID is the node's unique shell identifier,
	// prefix + "_" + sanitized command path.
	PrefixID string
	// Flags holds the node's completion words: literal choice values in
	// declaration order followed by the node's own flags, with global
	// options removed and first occurrence winning on duplicates.
	Flags []string
	// Subcommands lists literal child names in declaration order.
	Subcommands []string
	// DynamicFn names the shell function resolved from the node's
	// DynamicMarker, or is empty when the node has none.
	DynamicFn string
}

// BuildResult is the complete product of one tree traversal, consumed by an
// Emitter in a single serialization pass.
type BuildResult struct {
	// Root describes the root node. Its PrefixID is the namespace prefix
	// every other identifier in the script starts with.
	Root *Vocabulary
	// All holds one Vocabulary per non-root node in first-visit order.
	All []*Vocabulary
	// RootCommands lists the root's literal subcommand names.
	RootCommands []string
	// GlobalOptions holds the root's flags, offered at every depth and
	// excluded from non-root word lists.
	GlobalOptions []string
}

// Emitter serializes a BuildResult into completion-script text for one
// shell dialect. Implementations hold all shell syntax; the builder knows
// none of it.
type Emitter interface {
	Emit(programName string, result *BuildResult, preamble string) (string, error)
}

// Generator turns a CommandNode tree into a completion script for one shell.
// Configure with New and ConfigureGeneratorFunc options.
type Generator struct {
	shell       string
	programName string
	prefix      string
	preamble    string
	markerFns   map[string]string
	emitter     Emitter
	logger      *logrus.Logger
}

// Names of the static helper functions embedded in every emitted bash
// script. Custom marker kinds resolve to caller-supplied function names
// which the preamble is expected to define.
const (
	compgenFilesFn  = "_tabgen_compgen_files"
	replaceHyphenFn = "_tabgen_replace_hyphen"
)

var (
	ErrUnsupportedShell      = errors.New("unsupported shell")
	ErrUnknownMarkerKind     = errors.New("unknown completion marker kind")
	ErrInvalidMarkerFunction = errors.New("invalid marker function registration")
	ErrMalformedTree         = errors.New("malformed command tree")
	ErrEmptyProgramName      = errors.New("program name must not be empty")
	ErrNilEmitter            = errors.New("emitter must not be nil")
)

const (
	FmtErrorWithString = "%w: %s"
)
