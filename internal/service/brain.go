package service

import "sort"

// Brain owns every use attached to one actor.
type Brain struct {
	id              string
	uses            []*BehaviorUse
	handledMessages map[string]struct{}
}

func NewBrain(id string, uses []*BehaviorUse) *Brain {
	handled := make(map[string]struct{})
	for _, u := range uses {
		for m := range u.handledMessages {
			handled[m] = struct{}{}
		}
	}
	return &Brain{id: id, uses: uses, handledMessages: handled}
}

func (b *Brain) ID() string {
	return b.id
}

// Uses returns the owned uses in snapshot order. Callers must not modify the slice.
func (b *Brain) Uses() []*BehaviorUse {
	return b.uses
}

func (b *Brain) HasHandlersFor(message string) bool {
	_, ok := b.handledMessages[message]
	return ok
}

func (b *Brain) HandledMessageNames() []string {
	names := make([]string, 0, len(b.handledMessages))
	for m := range b.handledMessages {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

// ForEachUseHandling calls visit for every use of the brain. Uses are not
// filtered by CanHandle(message); callers check capability themselves.
func (b *Brain) ForEachUseHandling(message string, visit func(*BehaviorUse)) {
	for _, u := range b.uses {
		visit(u)
	}
}

func (b *Brain) HasUse(id string) bool {
	_, ok := b.GetUse(id)
	return ok
}

func (b *Brain) GetUse(id string) (*BehaviorUse, bool) {
	for _, u := range b.uses {
		if u.id == id {
			return u, true
		}
	}
	return nil, false
}
