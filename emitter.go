package tabgen

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Shell dialects with a built-in emitter.
const (
	ShellBash = "bash"
)

var (
	emittersMu sync.RWMutex
	emitters   = map[string]Emitter{
		ShellBash: &BashEmitter{},
	}
)

// RegisterEmitter makes an emitter available under the given shell name,
// replacing any previous registration for that name. This is the extension
// seam for dialects beyond bash.
func RegisterEmitter(shell string, emitter Emitter) error {
	if emitter == nil {
		return fmt.Errorf(FmtErrorWithString, ErrNilEmitter, shell)
	}

	emittersMu.Lock()
	defer emittersMu.Unlock()
	emitters[shell] = emitter

	return nil
}

// Shells returns the registered dialect names in alphabetical order.
func Shells() []string {
	emittersMu.RLock()
	defer emittersMu.RUnlock()

	names := make([]string, 0, len(emitters))
	for name := range emitters {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// emitterFor resolves a shell name to its emitter. Unknown dialects fail
// here, before any traversal work happens.
func emitterFor(shell string) (Emitter, error) {
	emittersMu.RLock()
	defer emittersMu.RUnlock()

	emitter, ok := emitters[shell]
	if !ok {
		names := make([]string, 0, len(emitters))
		for name := range emitters {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("%w: %q is not implemented (supported: %s)", ErrUnsupportedShell, shell, strings.Join(names, ", "))
	}

	return emitter, nil
}
