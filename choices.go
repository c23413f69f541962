package tabgen

import "sort"

// Convenience markers covering the built-in kinds.
var (
	FileCompletion              = &DynamicMarker{Kind: KindFile}
	DirectoryCompletion         = &DynamicMarker{Kind: KindDirectory}
	RequiredFileCompletion      = &DynamicMarker{Kind: KindFile, Required: true}
	RequiredDirectoryCompletion = &DynamicMarker{Kind: KindDirectory, Required: true}
)

// Literal returns a Choice naming a subcommand. The name must resolve to a
// child of the node the enclosing positional belongs to.
func Literal(name string) Choice {
	return Choice{
		kind:    choiceLiteral,
		literal: name,
	}
}

// Dynamic returns a Choice wrapping a completion marker.
func Dynamic(marker *DynamicMarker) Choice {
	return Choice{
		kind:   choiceDynamic,
		marker: marker,
	}
}

// IsDynamic reports whether the choice wraps a DynamicMarker.
func (c Choice) IsDynamic() bool {
	return c.kind == choiceDynamic
}

// String renders the choice for diagnostics. Dynamic markers render as
// their kind, with a trailing '?' when optional.
func (c Choice) String() string {
	if c.kind != choiceDynamic {
		return c.literal
	}
	if c.marker == nil {
		return "<nil marker>"
	}
	if c.marker.Required {
		return c.marker.Kind
	}
	return c.marker.Kind + "?"
}

func (c Choice) isRequiredDynamic() bool {
	return c.kind == choiceDynamic && c.marker != nil && c.marker.Required
}

// compareChoices is the ordering rule applied to a positional's choices
// before traversal: a required dynamic marker sorts ahead of everything,
// optional markers and literals are order-indifferent among themselves.
// Combined with a stable sort this preserves literal declaration order.
func compareChoices(a, b Choice) int {
	aReq, bReq := a.isRequiredDynamic(), b.isRequiredDynamic()
	switch {
	case aReq && !bReq:
		return -1
	case bReq && !aReq:
		return 1
	default:
		return 0
	}
}

// sortChoices returns the choices ordered by compareChoices without
// modifying the input slice.
func sortChoices(choices []Choice) []Choice {
	sorted := make([]Choice, len(choices))
	copy(sorted, choices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return compareChoices(sorted[i], sorted[j]) < 0
	})
	return sorted
}
