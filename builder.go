package tabgen

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// vocabBuilder accumulates the product of one traversal. Generate creates a
// fresh builder per call, so concurrent builds over different trees never
// share state.
type vocabBuilder struct {
	rootPrefix string
	markerFns  map[string]string
	logger     *logrus.Logger

	result  *BuildResult
	claimed map[string]string // prefix ID -> name of the node that claimed it
}

func newVocabBuilder(g *Generator) *vocabBuilder {
	markerFns := map[string]string{
		KindFile:      compgenFilesFn,
		KindDirectory: compgenFilesFn,
	}
	for kind, fn := range g.markerFns {
		markerFns[kind] = fn
	}

	base := g.prefix
	if base == "" {
		base = g.programName
	}

	return &vocabBuilder{
		rootPrefix: "_tabgen_" + sanitizeIdentifier(base),
		markerFns:  markerFns,
		logger:     g.logger,
		claimed:    map[string]string{},
	}
}

// build walks the tree exactly once, depth-first with children in
// declaration order, and returns the vocabularies ready for emission.
func (b *vocabBuilder) build(root *CommandNode) (*BuildResult, error) {
	b.result = &BuildResult{}
	b.logger.WithField("prefix", b.rootPrefix).Debug("building completion vocabulary")

	rootVocab, err := b.walk(root, b.rootPrefix, true)
	if err != nil {
		return nil, err
	}

	b.result.Root = rootVocab
	b.result.RootCommands = rootVocab.Subcommands

	return b.result, nil
}

func (b *vocabBuilder) walk(node *CommandNode, prefix string, isRoot bool) (*Vocabulary, error) {
	vocab := &Vocabulary{PrefixID: prefix}

	if isRoot {
		b.result.GlobalOptions = append([]string(nil), node.Flags...)
		vocab.Flags = append([]string(nil), node.Flags...)
		b.logger.WithField("global_options", b.result.GlobalOptions).Debug("root options hoisted")
	} else {
		if name, dup := b.claimed[prefix]; dup {
			b.logger.WithFields(logrus.Fields{
				"id":    prefix,
				"first": name,
				"then":  node.Name,
			}).Warn("command names collide after sanitization, the last definition wins")
		}
		b.claimed[prefix] = node.Name

		var words []string
		for _, pos := range node.Positionals {
			for _, choice := range pos.Choices {
				if !choice.IsDynamic() {
					words = append(words, choice.literal)
				}
			}
		}
		words = append(words, node.Flags...)
		vocab.Flags = lo.Without(lo.Uniq(words), b.result.GlobalOptions...)

		b.result.All = append(b.result.All, vocab)
	}

	for _, pos := range node.Positionals {
		if len(pos.Choices) == 0 {
			b.logger.WithFields(logrus.Fields{
				"node": prefix,
				"dest": pos.Dest,
			}).Warn("uncompletable positional")
			continue
		}

		b.logger.WithFields(logrus.Fields{
			"node": prefix,
			"dest": pos.Dest,
			"choices": lo.Map(pos.Choices, func(c Choice, _ int) string {
				return c.String()
			}),
		}).Debug("positional choices")

		for _, choice := range sortChoices(pos.Choices) {
			if choice.IsDynamic() {
				fn, known := b.markerFns[choice.marker.Kind]
				if !known {
					return nil, fmt.Errorf("%w: %q in %q on %s", ErrUnknownMarkerKind, choice.marker.Kind, pos.Dest, prefix)
				}
				vocab.DynamicFn = fn
				continue
			}

			child, ok := lookupChild(node, choice.literal)
			if !ok {
				return nil, fmt.Errorf("%w: literal %q on %s has no child node", ErrMalformedTree, choice.literal, prefix)
			}
			vocab.Subcommands = append(vocab.Subcommands, choice.literal)
			if _, err := b.walk(child, prefix+"_"+sanitizeName(choice.literal), false); err != nil {
				return nil, err
			}
		}
	}

	if len(vocab.Subcommands) > 0 {
		b.logger.WithFields(logrus.Fields{
			"node":        prefix,
			"subcommands": vocab.Subcommands,
		}).Debug("subcommands registered")
	}

	return vocab, nil
}

// sanitizeName maps hyphens to underscores, mirroring the lookup the
// emitted script performs on typed words at completion time.
func sanitizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// sanitizeIdentifier coerces an arbitrary string (a program name or a
// caller-supplied prefix) into shell identifier characters.
func sanitizeIdentifier(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
