package tabgen

import (
	"fmt"
	"regexp"

	"github.com/veldran/tabgen/types/queue"
)

// Command names must sanitize to shell identifiers, so anything outside
// this set is rejected up front. Flags are not constrained; they never
// become identifiers.
var commandNameRx = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type treeVisit struct {
	node *CommandNode
	path string
}

// Validate walks the tree and returns the first structural problem found as
// an ErrMalformedTree. Generate runs it before building; callers may use it
// as a standalone pre-flight check. Sharing a subtree between parents is
// allowed, cycles are not.
func Validate(root *CommandNode) error {
	if root == nil {
		return fmt.Errorf(FmtErrorWithString, ErrMalformedTree, "nil root")
	}

	if err := checkCycles(root, pathLabel(root), map[*CommandNode]bool{}); err != nil {
		return err
	}

	seen := map[*CommandNode]bool{}
	pending := queue.New[treeVisit]()
	pending.Enqueue(treeVisit{node: root, path: pathLabel(root)})

	for pending.Len() > 0 {
		visit, _ := pending.Dequeue()
		if seen[visit.node] {
			continue
		}
		seen[visit.node] = true

		if err := validateNode(visit.node, visit.path, visit.node == root); err != nil {
			return err
		}

		for it := visit.node.Children.Front(); it != nil; it = it.Next() {
			if it.Value == nil {
				continue
			}
			pending.Enqueue(treeVisit{node: it.Value, path: visit.path + " " + *it.Key})
		}
	}

	return nil
}

func pathLabel(root *CommandNode) string {
	if root != nil && root.Name != "" {
		return root.Name
	}
	return "(root)"
}

func checkCycles(node *CommandNode, path string, onPath map[*CommandNode]bool) error {
	if node == nil {
		return nil
	}
	if onPath[node] {
		return fmt.Errorf("%w: cycle through %s", ErrMalformedTree, path)
	}
	onPath[node] = true
	for it := node.Children.Front(); it != nil; it = it.Next() {
		if err := checkCycles(it.Value, path+" "+*it.Key, onPath); err != nil {
			return err
		}
	}
	delete(onPath, node)
	return nil
}

func validateNode(node *CommandNode, path string, isRoot bool) error {
	if node == nil {
		return fmt.Errorf("%w: nil node at %s", ErrMalformedTree, path)
	}

	if !isRoot {
		if node.Name == "" {
			return fmt.Errorf("%w: nameless node at %s", ErrMalformedTree, path)
		}
		if !commandNameRx.MatchString(node.Name) {
			return fmt.Errorf("%w: command name %q cannot form a shell identifier", ErrMalformedTree, node.Name)
		}
	}

	seenFlags := map[string]bool{}
	for _, flag := range node.Flags {
		if flag == "" {
			return fmt.Errorf("%w: empty flag on %s", ErrMalformedTree, path)
		}
		if seenFlags[flag] {
			return fmt.Errorf("%w: duplicate flag %q on %s", ErrMalformedTree, flag, path)
		}
		seenFlags[flag] = true
	}

	literals := map[string]bool{}
	for i, pos := range node.Positionals {
		if pos == nil {
			return fmt.Errorf("%w: nil positional %d on %s", ErrMalformedTree, i, path)
		}
		markers := 0
		for _, choice := range pos.Choices {
			switch choice.kind {
			case choiceDynamic:
				if choice.marker == nil {
					return fmt.Errorf("%w: nil marker in %q on %s", ErrMalformedTree, pos.Dest, path)
				}
				markers++
				if markers > 1 {
					return fmt.Errorf("%w: multiple dynamic markers in %q on %s", ErrMalformedTree, pos.Dest, path)
				}
			case choiceLiteral:
				if choice.literal == "" {
					return fmt.Errorf("%w: empty literal in %q on %s", ErrMalformedTree, pos.Dest, path)
				}
				if _, ok := lookupChild(node, choice.literal); !ok {
					return fmt.Errorf("%w: literal %q in %q on %s has no child node", ErrMalformedTree, choice.literal, pos.Dest, path)
				}
				literals[choice.literal] = true
			case choiceEmpty:
				return fmt.Errorf("%w: uninitialized choice in %q on %s", ErrMalformedTree, pos.Dest, path)
			}
		}
	}

	for it := node.Children.Front(); it != nil; it = it.Next() {
		name, child := *it.Key, it.Value
		if child == nil {
			return fmt.Errorf("%w: nil child %q of %s", ErrMalformedTree, name, path)
		}
		if child.Name != name {
			return fmt.Errorf("%w: child registered as %q on %s names itself %q", ErrMalformedTree, name, path, child.Name)
		}
		if !literals[name] {
			return fmt.Errorf("%w: child %q of %s is not reachable through any positional choice", ErrMalformedTree, name, path)
		}
	}

	return nil
}

func lookupChild(node *CommandNode, name string) (*CommandNode, bool) {
	if node.Children == nil {
		return nil, false
	}
	child, ok := node.Children.Get(name)
	if !ok || child == nil {
		return nil, false
	}
	return child, true
}
