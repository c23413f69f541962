package tabgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsWellFormedTrees(t *testing.T) {
	assert.Nil(t, Validate(NewCommand(WithName("solo"))), "a leaf root is valid")
	assert.Nil(t, Validate(NewCommand()), "the root may be nameless")
	assert.Nil(t, Validate(gitLikeTree()), "nested subcommands are valid")
}

func TestValidateAllowsSharedSubtrees(t *testing.T) {
	shared := NewCommand(WithName("list"), WithFlags("--long"))
	root := NewCommand(
		WithName("tool"),
		WithSubcommands(
			NewCommand(WithName("remote"), WithSubcommands(shared)),
			NewCommand(WithName("stage"), WithSubcommands(shared)),
		),
	)

	assert.Nil(t, Validate(root), "one node reachable through two parents is sharing, not a cycle")
}

func TestValidateRejectsCycles(t *testing.T) {
	parent := NewCommand(WithName("up"))
	child := NewCommand(WithName("down"))
	parent.AddSubcommand(child)
	child.AddSubcommand(parent)

	err := Validate(parent)
	require.NotNil(t, err)
	assert.ErrorIs(t, err, ErrMalformedTree)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidateRejectsMalformedTrees(t *testing.T) {
	cases := []struct {
		name    string
		build   func() *CommandNode
		wantMsg string
	}{
		{
			name:    "nil root",
			build:   func() *CommandNode { return nil },
			wantMsg: "nil root",
		},
		{
			name: "invalid command name",
			build: func() *CommandNode {
				return NewCommand(WithName("tool"),
					WithSubcommands(NewCommand(WithName("has space"))))
			},
			wantMsg: "shell identifier",
		},
		{
			name: "empty flag",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.Flags = []string{""}
				return root
			},
			wantMsg: "empty flag",
		},
		{
			name: "duplicate flag",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.Flags = []string{"--force", "--force"}
				return root
			},
			wantMsg: "duplicate flag",
		},
		{
			name: "nil positional",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.Positionals = append(root.Positionals, nil)
				return root
			},
			wantMsg: "nil positional",
		},
		{
			name: "nil marker",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.AddPositional("path", Choice{kind: choiceDynamic})
				return root
			},
			wantMsg: "nil marker",
		},
		{
			name: "multiple markers in one positional",
			build: func() *CommandNode {
				return NewCommand(WithName("tool"),
					WithPositional("path", Dynamic(FileCompletion), Dynamic(DirectoryCompletion)))
			},
			wantMsg: "multiple dynamic markers",
		},
		{
			name: "empty literal",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.AddPositional("cmd", Literal(""))
				return root
			},
			wantMsg: "empty literal",
		},
		{
			name: "literal without child",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.AddPositional("cmd", Literal("ghost"))
				return root
			},
			wantMsg: "no child node",
		},
		{
			name: "uninitialized choice",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.AddPositional("cmd", Choice{})
				return root
			},
			wantMsg: "uninitialized choice",
		},
		{
			name: "nil child",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.Children.Set("ghost", nil)
				return root
			},
			wantMsg: "nil child",
		},
		{
			name: "child registered under the wrong name",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.AddPositional("cmd", Literal("alias"))
				root.Children.Set("alias", NewCommand(WithName("real")))
				return root
			},
			wantMsg: "names itself",
		},
		{
			name: "unreachable child",
			build: func() *CommandNode {
				root := NewCommand(WithName("tool"))
				root.Children.Set("orphan", NewCommand(WithName("orphan")))
				return root
			},
			wantMsg: "not reachable",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.build())
			require.NotNil(t, err, "expected a validation error")
			assert.ErrorIs(t, err, ErrMalformedTree)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestGenerateFailsFastOnMalformedTrees(t *testing.T) {
	root := NewCommand(WithName("tool"))
	root.AddPositional("cmd", Literal("ghost"))

	script, err := Generate(root, ShellBash, "tool")
	assert.ErrorIs(t, err, ErrMalformedTree)
	assert.Equal(t, "", script, "no partial output on malformed trees")
}
