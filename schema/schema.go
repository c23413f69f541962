// Package schema loads command trees from YAML files.
//
// A schema file mirrors the CommandNode tree one to one: every node may
// carry flags, positionals and a commands mapping. Two shorthands keep
// common files small: flags written as one scalar string are tokenized
// with shell quoting rules, and complete/required on a node stand in for a
// single dynamic positional. Command order in the file is preserved, it
// becomes the completion order in the emitted script.
//
//	prog: dvc
//	flags: --verbose -q
//	commands:
//	  push:
//	    flags: [--force]
//	  pull:
//	    positionals:
//	      - dest: target
//	        complete: file
//	        required: true
package schema

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"

	"github.com/veldran/tabgen"
)

var ErrInvalidSchema = errors.New("invalid completion schema")

type document struct {
	Prog string   `yaml:"prog"`
	Node nodeSpec `yaml:",inline"`
}

type nodeSpec struct {
	Flags       yaml.Node        `yaml:"flags"`
	Complete    string           `yaml:"complete"`
	Required    bool             `yaml:"required"`
	Positionals []positionalSpec `yaml:"positionals"`
	Commands    yaml.Node        `yaml:"commands"`
}

type positionalSpec struct {
	Dest     string   `yaml:"dest"`
	Choices  []string `yaml:"choices"`
	Complete string   `yaml:"complete"`
	Required bool     `yaml:"required"`
}

type namedSpec struct {
	name string
	spec nodeSpec
}

// Load decodes one schema document and returns the command tree plus the
// declared program name. The program name may be empty; callers decide
// whether they can supply one from elsewhere.
func Load(r io.Reader) (*tabgen.CommandNode, string, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, "", fmt.Errorf("%w: empty document", ErrInvalidSchema)
		}
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidSchema, err)
	}

	root, err := buildNode(doc.Prog, doc.Node)
	if err != nil {
		return nil, "", err
	}

	return root, doc.Prog, nil
}

// LoadFile reads and decodes the schema at path.
func LoadFile(path string) (*tabgen.CommandNode, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	return Load(f)
}

func buildNode(name string, spec nodeSpec) (*tabgen.CommandNode, error) {
	cmd := tabgen.NewCommand(tabgen.WithName(name))

	flags, err := flagTokens(spec.Flags)
	if err != nil {
		return nil, fmt.Errorf("%w: flags of %q: %s", ErrInvalidSchema, name, err)
	}
	cmd.AddFlags(flags...)

	children, err := childSpecs(spec.Commands)
	if err != nil {
		return nil, fmt.Errorf("%w: commands of %q: %s", ErrInvalidSchema, name, err)
	}
	for _, entry := range children {
		child, err := buildNode(entry.name, entry.spec)
		if err != nil {
			return nil, err
		}
		cmd.AddSubcommand(child)
	}

	for _, pos := range spec.Positionals {
		addPositional(cmd, pos)
	}

	if spec.Complete != "" {
		cmd.AddPositional("argument",
			tabgen.Dynamic(&tabgen.DynamicMarker{Kind: spec.Complete, Required: spec.Required}))
	}

	return cmd, nil
}

// addPositional translates one full-form positional. Literal choices that
// do not name a declared command get an empty child node, so plain value
// enumerations need no commands mapping. A choice naming something already
// completable on this node is redundant and dropped.
func addPositional(cmd *tabgen.CommandNode, pos positionalSpec) {
	dest := pos.Dest
	if dest == "" {
		dest = "argument"
	}

	var choices []tabgen.Choice
	for _, literal := range pos.Choices {
		if _, exists := cmd.Children.Get(literal); exists {
			continue
		}
		cmd.Children.Set(literal, tabgen.NewCommand(tabgen.WithName(literal)))
		choices = append(choices, tabgen.Literal(literal))
	}
	if pos.Complete != "" {
		choices = append(choices,
			tabgen.Dynamic(&tabgen.DynamicMarker{Kind: pos.Complete, Required: pos.Required}))
	}

	cmd.AddPositional(dest, choices...)
}

// flagTokens accepts either a YAML list of flags or one scalar split with
// shell quoting rules.
func flagTokens(node yaml.Node) ([]string, error) {
	switch {
	case node.IsZero(), node.Tag == "!!null":
		return nil, nil
	case node.Kind == yaml.ScalarNode:
		return shlex.Split(node.Value)
	case node.Kind == yaml.SequenceNode:
		var flags []string
		if err := node.Decode(&flags); err != nil {
			return nil, err
		}
		return flags, nil
	default:
		return nil, errors.New("expected a string or a list")
	}
}

// childSpecs walks the commands mapping by hand; decoding into a Go map
// would lose the declaration order the emitted script depends on.
func childSpecs(node yaml.Node) ([]namedSpec, error) {
	if node.IsZero() || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.New("expected a mapping of command names")
	}

	specs := make([]namedSpec, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var spec nodeSpec
		if value.Tag != "!!null" {
			if err := value.Decode(&spec); err != nil {
				return nil, err
			}
		}
		specs = append(specs, namedSpec{name: key.Value, spec: spec})
	}

	return specs, nil
}
