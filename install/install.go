// Package install places generated completion scripts into the per-user
// directories each shell sources them from.
package install

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/adrg/xdg"

	"github.com/veldran/tabgen"
)

// Paths holds the candidate directories for one shell. Primary is tried
// first; Fallback covers setups where the primary location is not writable
// or not sourced.
type Paths struct {
	Primary  string
	Fallback string
}

// Shell names with known install conventions. Installing is independent of
// emitting: a dialect can have a well-known directory before an Emitter for
// it exists.
const (
	Bash       = "bash"
	Zsh        = "zsh"
	Fish       = "fish"
	PowerShell = "powershell"
)

// Supported returns the shells with install conventions, alphabetically.
func Supported() []string {
	shells := []string{Bash, Zsh, Fish, PowerShell}
	sort.Strings(shells)
	return shells
}

// PathsFor returns the per-user completion directories for a shell.
func PathsFor(shell string) (Paths, error) {
	switch shell {
	case Bash:
		return Paths{
			Primary:  filepath.Join(xdg.DataHome, "bash-completion", "completions"),
			Fallback: filepath.Join(xdg.Home, ".bash_completion.d"),
		}, nil
	case Zsh:
		return Paths{
			Primary:  filepath.Join(xdg.Home, ".zsh", "completion"),
			Fallback: filepath.Join(xdg.Home, ".zfunc"),
		}, nil
	case Fish:
		return Paths{
			Primary:  filepath.Join(xdg.ConfigHome, "fish", "completions"),
			Fallback: filepath.Join(xdg.DataHome, "fish", "completions"),
		}, nil
	case PowerShell:
		return Paths{
			Primary:  filepath.Join(xdg.ConfigHome, "powershell", "Completions"),
			Fallback: filepath.Join(xdg.Home, ".config", "powershell", "Completions"),
		}, nil
	default:
		return Paths{}, fmt.Errorf(tabgen.FmtErrorWithString, tabgen.ErrUnsupportedShell, shell)
	}
}

// FileName returns the file name convention for a shell: bash sources plain
// command names, zsh autoloads underscore-prefixed functions, fish and
// powershell key on the extension.
func FileName(shell, prog string) string {
	prog = filepath.Base(prog)
	switch shell {
	case Zsh:
		return "_" + prog
	case Fish:
		return prog + ".fish"
	case PowerShell:
		return prog + ".ps1"
	default:
		return prog
	}
}

// Write stores a completion script under the shell's primary directory,
// falling back to the secondary one when the primary cannot be prepared.
// It returns the path the script ended up at.
func Write(shell, prog, script string) (string, error) {
	if script == "" {
		return "", fmt.Errorf("no completion script to install for %s", prog)
	}

	paths, err := PathsFor(shell)
	if err != nil {
		return "", err
	}

	dir, err := ensureDir(paths)
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, FileName(shell, prog))
	if err := os.WriteFile(target, []byte(script), 0o644); err != nil {
		return "", fmt.Errorf("failed to write completion file: %w", err)
	}

	return target, ensurePermission(target, 0o644)
}

func ensureDir(paths Paths) (string, error) {
	perm := os.FileMode(0o755)

	err := os.MkdirAll(paths.Primary, perm)
	if err == nil {
		if err = ensurePermission(paths.Primary, perm); err == nil {
			return paths.Primary, nil
		}
	}

	if paths.Fallback == "" {
		return "", fmt.Errorf("failed to create completion directory: %w", err)
	}
	if err := os.MkdirAll(paths.Fallback, perm); err != nil {
		return "", fmt.Errorf("failed to create fallback completion directory: %w", err)
	}

	return paths.Fallback, ensurePermission(paths.Fallback, perm)
}

func ensurePermission(path string, perm os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}

	if runtime.GOOS == "windows" {
		return nil
	}

	if actual := info.Mode().Perm(); actual != perm {
		if err := os.Chmod(path, perm); err != nil {
			return fmt.Errorf("failed to set permissions on %s from %o to %o: %w",
				path, actual, perm, err)
		}
	}

	return nil
}
