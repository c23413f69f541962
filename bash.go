package tabgen

import (
	"fmt"
	"strings"
)

// BashEmitter serializes a BuildResult into a self-contained bash
// completion script. The zero value is ready to use.
//
// Script layout, in order: banner, root word-list variables, per-node
// word-list variables, helper and dispatch functions, the caller preamble,
// and the complete-builtin registration last.
type BashEmitter struct{}

// bashFunctions holds everything between the word-list variables and the
// preamble. %[1]s is the namespace prefix, %[2]s and %[3]s are the shared
// helper names the builder binds marker kinds to. The dispatch functions
// rely on bash dynamic scoping: word is local to the entry point but
// visible in the compgen helpers it calls.
const bashFunctions = `
# $1=word being completed
%[2]s() {
  compgen -f -- "$1"
  compgen -d -S '/' -- "$1"  # recurse into subdirs
}

# $1=command word to normalize
%[3]s() {
  echo "$1" | sed 's/-/_/g'
}

# $1=COMP_WORDS[1]
%[1]s_compgen_command() {
  local flags_list="%[1]s_$(%[3]s "$1")"
  local args_gen="${flags_list}_COMPGEN"
  COMPREPLY=( $(compgen -W "$%[1]s_global_options_ ${!flags_list}" -- "$word"; [ -n "${!args_gen}" ] && ${!args_gen} "$word") )
}

# $1=COMP_WORDS[1]
# $2=COMP_WORDS[2]
%[1]s_compgen_subcommand() {
  local flags_list="%[1]s_$(%[3]s "$1")_$(%[3]s "$2")"
  local args_gen="${flags_list}_COMPGEN"
  [ -n "${!args_gen}" ] && local opts_more="$(${!args_gen} "$word")"
  local opts="${!flags_list}"
  if [ -z "$opts$opts_more" ]; then
    %[1]s_compgen_command "$1"
  else
    COMPREPLY=( $(compgen -W "$%[1]s_global_options_ $opts" -- "$word"; [ -n "$opts_more" ] && echo "$opts_more") )
  fi
}

# Notes:
# COMPREPLY holds what will be offered once completion is triggered
# word is the token currently being typed
# ${!var} expands the variable whose name is stored in var
%[1]s() {
  local word="${COMP_WORDS[COMP_CWORD]}"

  COMPREPLY=()

  if [ "${COMP_CWORD}" -eq 1 ]; then
    case "$word" in
      -*) COMPREPLY=( $(compgen -W "$%[1]s_options_" -- "$word") ) ;;
      *) COMPREPLY=( $(compgen -W "$%[1]s_commands_" -- "$word") ) ;;
    esac
  elif [ "${COMP_CWORD}" -eq 2 ]; then
    %[1]s_compgen_command "${COMP_WORDS[1]}"
  elif [ "${COMP_CWORD}" -ge 3 ]; then
    %[1]s_compgen_subcommand "${COMP_WORDS[1]}" "${COMP_WORDS[2]}"
  fi

  return 0
}
`

func (e *BashEmitter) Emit(programName string, result *BuildResult, preamble string) (string, error) {
	if result == nil || result.Root == nil {
		return "", fmt.Errorf(FmtErrorWithString, ErrMalformedTree, "empty build result")
	}

	prefix := result.Root.PrefixID
	var script strings.Builder

	script.WriteString("#!/usr/bin/env bash\n")
	script.WriteString(fmt.Sprintf("# bash completion for %s, generated by tabgen\n", programName))
	script.WriteString("\n")

	script.WriteString(fmt.Sprintf("%s_commands_='%s'\n", prefix, strings.Join(result.RootCommands, " ")))
	script.WriteString(fmt.Sprintf("%s_options_='%s'\n", prefix, strings.Join(result.GlobalOptions, " ")))
	script.WriteString(fmt.Sprintf("%s_global_options_='%s'\n", prefix, strings.Join(result.GlobalOptions, " ")))
	script.WriteString("\n")

	if result.Root.DynamicFn != "" {
		script.WriteString(fmt.Sprintf("%s_COMPGEN=%s\n", prefix, result.Root.DynamicFn))
	}
	for _, vocab := range result.All {
		script.WriteString(fmt.Sprintf("%s='%s'\n", vocab.PrefixID, strings.Join(vocab.Flags, " ")))
		if vocab.DynamicFn != "" {
			script.WriteString(fmt.Sprintf("%s_COMPGEN=%s\n", vocab.PrefixID, vocab.DynamicFn))
		}
	}

	script.WriteString(fmt.Sprintf(bashFunctions, prefix, compgenFilesFn, replaceHyphenFn))

	if preamble != "" {
		script.WriteString("\n# Preamble\n")
		script.WriteString(preamble)
		script.WriteString("\n# End Preamble\n")
	}

	script.WriteString(fmt.Sprintf("\ncomplete -o nospace -F %s %s\n", prefix, programName))

	return script.String(), nil
}
