package module

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/Harshitk-cp/brainbase/internal/domain"
)

var (
	ErrDuplicateModule = errors.New("module already registered")
	ErrInvalidModule   = errors.New("invalid module")
)

// prefixLen is the number of characters stripped from a prefixed export name.
// Both handler prefixes are exactly this long.
const prefixLen = 2

// Registry maps behavior URIs to their capability tables.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*domain.CapabilityTable
}

func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*domain.CapabilityTable)}
}

// Register indexes a module's exports under key.
func (r *Registry) Register(key string, m domain.Module) error {
	if key == "" || m == nil {
		return ErrInvalidModule
	}

	table := BuildCapabilityTable(key, m)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[key]; exists {
		return ErrDuplicateModule
	}
	r.modules[key] = table
	return nil
}

// Unregister removes a module. Databases built before the call keep working
// with the table they resolved.
func (r *Registry) Unregister(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[key]; !exists {
		return false
	}
	delete(r.modules, key)
	return true
}

func (r *Registry) Resolve(key string) (*domain.CapabilityTable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.modules[key]
	return t, ok
}

// Keys returns the registered module keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.modules))
	for k := range r.modules {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// BuildCapabilityTable scans a module's export names once. An export whose
// name starts with either handler prefix handles the message named by the
// rest of the export name.
func BuildCapabilityTable(key string, m domain.Module) *domain.CapabilityTable {
	table := &domain.CapabilityTable{
		Key:     key,
		Module:  m,
		Current: make(map[string]domain.Handler),
		Legacy:  make(map[string]domain.Handler),
	}

	seen := make(map[string]bool)
	for name, fn := range m.Exports() {
		isCurrent := strings.HasPrefix(name, domain.HandlerPrefix)
		isLegacy := strings.HasPrefix(name, domain.LegacyHandlerPrefix)
		if !isCurrent && !isLegacy {
			continue
		}

		message := name[prefixLen:]
		if isCurrent {
			table.Current[message] = fn
		} else {
			table.Legacy[message] = fn
		}
		if !seen[message] {
			seen[message] = true
			table.StaticMessages = append(table.StaticMessages, message)
		}
	}
	sort.Strings(table.StaticMessages)

	return table
}
