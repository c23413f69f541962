package tabgen

import (
	"strings"
	"testing"
)

func pushPullTree() *CommandNode {
	return NewCommand(
		WithName("dvc"),
		WithFlags("--verbose"),
		WithSubcommands(
			NewCommand(WithName("push"), WithFlags("--force")),
			NewCommand(WithName("pull"),
				WithPositional("target", Dynamic(FileCompletion))),
		),
	)
}

// assertOrder fails unless every fragment occurs in script, each one after
// the previous match.
func assertOrder(t *testing.T, script string, fragments ...string) {
	t.Helper()

	offset := 0
	for _, fragment := range fragments {
		at := strings.Index(script[offset:], fragment)
		if at < 0 {
			t.Errorf("expected %q after offset %d", fragment, offset)
			t.Logf("script:\n%s", script)
			return
		}
		offset += at + len(fragment)
	}
}

func TestBashScriptRoundTrip(t *testing.T) {
	script, err := Generate(pushPullTree(), ShellBash, "dvc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrder(t, script,
		"#!/usr/bin/env bash",
		"# bash completion for dvc, generated by tabgen",
		"_tabgen_dvc_commands_='push pull'",
		"_tabgen_dvc_options_='--verbose'",
		"_tabgen_dvc_global_options_='--verbose'",
		"_tabgen_dvc_push='--force'",
		"_tabgen_dvc_pull=''",
		"_tabgen_dvc_pull_COMPGEN=_tabgen_compgen_files",
		"_tabgen_compgen_files()",
		"_tabgen_replace_hyphen()",
		"_tabgen_dvc_compgen_command()",
		"_tabgen_dvc_compgen_subcommand()",
		"_tabgen_dvc()",
		"complete -o nospace -F _tabgen_dvc dvc",
	)

	if !strings.HasSuffix(script, "complete -o nospace -F _tabgen_dvc dvc\n") {
		t.Errorf("registration must be the last line, got tail %q", script[len(script)-60:])
	}
}

func TestBashScriptDeterminism(t *testing.T) {
	first, err := Generate(pushPullTree(), ShellBash, "dvc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 5; i++ {
		next, err := Generate(pushPullTree(), ShellBash, "dvc")
		if err != nil {
			t.Fatalf("unexpected error on run %d: %v", i, err)
		}
		if next != first {
			t.Fatalf("run %d produced different bytes", i)
		}
	}
}

func TestBashScriptPrefixOverride(t *testing.T) {
	plain, err := Generate(pushPullTree(), ShellBash, "dvc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prefixed, err := Generate(pushPullTree(), ShellBash, "dvc", WithPrefix("team"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(prefixed, "_tabgen_team_commands_=") {
		t.Error("override must replace the derived prefix")
	}
	if strings.Contains(prefixed, "_tabgen_dvc") {
		t.Error("the derived prefix must not survive an override")
	}
	if got := strings.ReplaceAll(prefixed, "_tabgen_team", "_tabgen_dvc"); got != plain {
		t.Error("scripts with different prefixes must differ only in the prefix")
		t.Logf("plain:\n%s", plain)
		t.Logf("rewritten:\n%s", got)
	}
}

func TestBashScriptPreamble(t *testing.T) {
	preamble := "export DVC_COMPLETION=1"
	script, err := Generate(pushPullTree(), ShellBash, "dvc", WithPreamble(preamble))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrder(t, script,
		"_tabgen_dvc()",
		"# Preamble",
		preamble,
		"# End Preamble",
		"complete -o nospace -F _tabgen_dvc dvc",
	)

	bare, err := Generate(pushPullTree(), ShellBash, "dvc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(bare, "# Preamble") {
		t.Error("no preamble markers without a preamble")
	}
}

func TestBashScriptRootMarker(t *testing.T) {
	root := NewCommand(
		WithName("open"),
		WithPositional("path", Dynamic(RequiredFileCompletion)),
	)
	script, err := Generate(root, ShellBash, "open")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrder(t, script,
		"_tabgen_open_commands_=''",
		"_tabgen_open_COMPGEN=_tabgen_compgen_files",
		"_tabgen_open_compgen_command()",
	)
	if !strings.Contains(script, "_tabgen_open_global_options_=''\n\n_tabgen_open_COMPGEN=_tabgen_compgen_files\n") {
		t.Error("the root marker opens the per-node block")
		t.Logf("script:\n%s", script)
	}
}

func TestBashScriptWordListQuoting(t *testing.T) {
	root := NewCommand(
		WithName("tool"),
		WithSubcommands(
			NewCommand(WithName("cache-dir"), WithFlags("--global", "--local")),
		),
	)
	script, err := Generate(root, ShellBash, "tool")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(script, "_tabgen_tool_cache_dir='--global --local'") {
		t.Error("word lists are single-quoted and space-joined under the sanitized id")
		t.Logf("script:\n%s", script)
	}
	if !strings.Contains(script, "_tabgen_tool_commands_='cache-dir'") {
		t.Error("command words keep their hyphens")
	}
}

func TestBashScriptDefinesBoundHelpers(t *testing.T) {
	script, err := Generate(pushPullTree(), ShellBash, "dvc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(script, "_tabgen_dvc_pull_COMPGEN="+compgenFilesFn) {
		t.Error("built-in marker kinds bind to the embedded files helper")
	}
	for _, helper := range []string{compgenFilesFn, replaceHyphenFn} {
		if !strings.Contains(script, "\n"+helper+"() {") {
			t.Errorf("script must define helper %s", helper)
			t.Logf("script:\n%s", script)
		}
	}
}

func TestBashEmitterRejectsEmptyResult(t *testing.T) {
	emitter := &BashEmitter{}

	for name, result := range map[string]*BuildResult{
		"nil result": nil,
		"nil root":   {},
	} {
		if _, err := emitter.Emit("tool", result, ""); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
