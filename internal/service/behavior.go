package service

import (
	"fmt"

	"github.com/Harshitk-cp/brainbase/internal/domain"
)

// Behavior resolves handlers for one behavior module. Many uses share a
// Behavior; it holds no state beyond the module's capability table.
type Behavior struct {
	uri   string
	table *domain.CapabilityTable
}

func newBehavior(uri string, table *domain.CapabilityTable) *Behavior {
	return &Behavior{uri: uri, table: table}
}

func (b *Behavior) URI() string {
	return b.uri
}

func (b *Behavior) capabilities() *domain.CapabilityTable {
	if b.table == nil || b.table.Module == nil {
		panic(fmt.Sprintf("behavior %q has no module", b.uri))
	}
	return b.table
}

// ResolveHandler finds the handler for message. A current-prefix export wins
// over a legacy-prefix one; otherwise the module's dynamic handler is
// returned, which may be nil.
func (b *Behavior) ResolveHandler(message string) (domain.Handler, bool) {
	t := b.capabilities()
	if h, ok := t.Current[message]; ok {
		return h, false
	}
	if h, ok := t.Legacy[message]; ok {
		return h, true
	}
	return t.Module.DynamicHandler(), false
}

// HandledMessageNames returns every message the module names statically plus
// the ones it declares for the use's current properties.
func (b *Behavior) HandledMessageNames(use *BehaviorUse) map[string]struct{} {
	t := b.capabilities()

	names := make(map[string]struct{}, len(t.StaticMessages))
	for _, m := range t.StaticMessages {
		names[m] = struct{}{}
	}
	for _, m := range t.Module.DeclareDynamicMessages(use.properties) {
		names[m] = struct{}{}
	}
	return names
}
