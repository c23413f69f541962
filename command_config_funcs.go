package tabgen

import (
	"github.com/samber/lo"
	"github.com/veldran/tabgen/types/orderedmap"
)

// subcommandDest is the diagnostic name of the positional that
// AddSubcommand maintains for a node's literal subcommand choices.
const subcommandDest = "command"

// NewCommand creates and returns a new CommandNode. This function takes variadic `ConfigureCommandFunc` functions to customize the created node.
func NewCommand(configs ...ConfigureCommandFunc) *CommandNode {
	cmd := &CommandNode{
		Name:        "",
		Positionals: nil,
		Flags:       nil,
		Children:    orderedmap.NewOrderedMap[string, *CommandNode](),
	}

	for _, config := range configs {
		config(cmd)
	}

	return cmd
}

// Set is a helper config function that allows setting multiple configuration functions on a node.
func (c *CommandNode) Set(configs ...ConfigureCommandFunc) {
	for _, config := range configs {
		config(c)
	}
}

// AddFlags appends optional flags to the node, keeping declaration order.
// Flags form an ordered set, so adding a flag the node already has is a no-op.
func (c *CommandNode) AddFlags(flags ...string) {
	for _, flag := range flags {
		if lo.Contains(c.Flags, flag) {
			continue
		}
		c.Flags = append(c.Flags, flag)
	}
}

// AddPositional appends a positional argument with the given choices.
// Literal choices must be matched with children (see AddSubcommand); dest
// only appears in diagnostics.
func (c *CommandNode) AddPositional(dest string, choices ...Choice) {
	c.Positionals = append(c.Positionals, &PositionalArg{
		Dest:    dest,
		Choices: choices,
	})
}

// AddSubcommand registers a child node and lists its name as a literal
// choice of the node's subcommand positional. Re-adding a name replaces the
// child without duplicating the choice. Nil or unnamed children are ignored
// here and rejected later by Validate when reachable through a literal.
func (c *CommandNode) AddSubcommand(child *CommandNode) {
	if child == nil || child.Name == "" {
		return
	}
	if c.Children == nil {
		c.Children = orderedmap.NewOrderedMap[string, *CommandNode]()
	}
	if _, exists := c.Children.Get(child.Name); exists {
		c.Children.Set(child.Name, child)
		return
	}

	pos := c.subcommandPositional()
	pos.Choices = append(pos.Choices, Literal(child.Name))
	c.Children.Set(child.Name, child)
}

func (c *CommandNode) subcommandPositional() *PositionalArg {
	for _, pos := range c.Positionals {
		if pos.Dest == subcommandDest {
			return pos
		}
	}
	pos := &PositionalArg{Dest: subcommandDest}
	c.Positionals = append(c.Positionals, pos)
	return pos
}

// WithName sets the name for the command. The name is the word the user types to invoke it.
func WithName(name string) ConfigureCommandFunc {
	return func(command *CommandNode) {
		command.Name = name
	}
}

// WithFlags appends optional flags to the command.
func WithFlags(flags ...string) ConfigureCommandFunc {
	return func(command *CommandNode) {
		command.AddFlags(flags...)
	}
}

// WithPositional appends a positional argument with the given choices.
func WithPositional(dest string, choices ...Choice) ConfigureCommandFunc {
	return func(command *CommandNode) {
		command.AddPositional(dest, choices...)
	}
}

// WithSubcommands function takes a list of subcommands and associates them with a command.
func WithSubcommands(subcommands ...*CommandNode) ConfigureCommandFunc {
	return func(command *CommandNode) {
		for i := 0; i < len(subcommands); i++ {
			command.AddSubcommand(subcommands[i])
		}
	}
}
