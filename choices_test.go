package tabgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChoiceString(t *testing.T) {
	assert.Equal(t, "push", Literal("push").String())
	assert.Equal(t, "file?", Dynamic(FileCompletion).String())
	assert.Equal(t, "file", Dynamic(RequiredFileCompletion).String())
	assert.Equal(t, "directory?", Dynamic(DirectoryCompletion).String())
	assert.Equal(t, "url", Dynamic(&DynamicMarker{Kind: "url", Required: true}).String())
}

func TestChoiceIsDynamic(t *testing.T) {
	assert.False(t, Literal("push").IsDynamic())
	assert.True(t, Dynamic(FileCompletion).IsDynamic())
	assert.False(t, Choice{}.IsDynamic(), "the zero value is not a marker")
}

func TestCompareChoices(t *testing.T) {
	required := Dynamic(RequiredFileCompletion)
	optional := Dynamic(FileCompletion)
	literal := Literal("push")

	assert.Equal(t, -1, compareChoices(required, literal), "required markers sort first")
	assert.Equal(t, 1, compareChoices(literal, required))
	assert.Equal(t, 0, compareChoices(literal, optional), "optional markers do not outrank literals")
	assert.Equal(t, 0, compareChoices(literal, Literal("pull")), "literals never reorder each other")
	assert.Equal(t, 0, compareChoices(required, Dynamic(RequiredDirectoryCompletion)))
}

func TestSortChoicesIsStable(t *testing.T) {
	choices := []Choice{
		Literal("zeta"),
		Literal("alpha"),
		Dynamic(RequiredFileCompletion),
		Literal("mid"),
	}

	sorted := sortChoices(choices)

	want := []string{"file", "zeta", "alpha", "mid"}
	got := make([]string, len(sorted))
	for i, choice := range sorted {
		got[i] = choice.String()
	}
	assert.Equal(t, want, got, "only the required marker moves, literals keep declaration order")

	assert.Equal(t, "zeta", choices[0].String(), "the input slice is untouched")
	assert.Equal(t, "file", choices[2].String())
}

func TestSortChoicesLeavesOptionalMarkersInPlace(t *testing.T) {
	choices := []Choice{
		Literal("push"),
		Dynamic(FileCompletion),
		Literal("pull"),
	}

	sorted := sortChoices(choices)

	got := make([]string, len(sorted))
	for i, choice := range sorted {
		got[i] = choice.String()
	}
	assert.Equal(t, []string{"push", "file?", "pull"}, got)
}
