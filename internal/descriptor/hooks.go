package descriptor

import (
	"sync"

	"github.com/provkit/provkit/internal/config"
)

// InitFunc is a configuration directory's programmatic init hook. It runs
// after the directory's descriptor file, if any, has been applied, and may
// read state set by earlier configuration paths.
type InitFunc func(*config.State) error

var (
	hooksMu sync.RWMutex
	hooks   = map[string]InitFunc{}
)

// RegisterHook associates fn with configuration directories whose basename
// is name, the same naming rule dynamically imported modules used.
// Registering a name again replaces the previous hook.
func RegisterHook(name string, fn InitFunc) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	hooks[name] = fn
}

func lookupHook(name string) (InitFunc, bool) {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	fn, ok := hooks[name]
	return fn, ok
}
