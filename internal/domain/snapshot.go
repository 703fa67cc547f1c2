package domain

import "context"

// Snapshot is the part of a serialized project that describes brains.
// Brains and BrainIDs are parallel lists.
type Snapshot struct {
	Brains   []BrainSnapshot `json:"brains" yaml:"brains"`
	BrainIDs []string        `json:"brainIds" yaml:"brainIds"`
}

type BrainSnapshot struct {
	BehaviorUses []UseSnapshot `json:"behaviorUses" yaml:"behaviorUses"`
}

type UseSnapshot struct {
	ID                  string               `json:"id" yaml:"id"`
	BehaviorURI         string               `json:"behaviorUri" yaml:"behaviorUri"`
	BrainID             string               `json:"brainId" yaml:"brainId"`
	PropertyAssignments []PropertyAssignment `json:"propertyAssignments" yaml:"propertyAssignments"`
}

// PropertyAssignment overrides one property; ValueJSON is JSON text.
type PropertyAssignment struct {
	PropertyName string `json:"propertyName" yaml:"propertyName"`
	ValueJSON    string `json:"valueJson" yaml:"valueJson"`
}

// UseCount returns the number of use entries across all brains.
func (s *Snapshot) UseCount() int {
	n := 0
	for _, b := range s.Brains {
		n += len(b.BehaviorUses)
	}
	return n
}

// SnapshotStore supplies the most recent project snapshot.
type SnapshotStore interface {
	Latest(ctx context.Context) (*Snapshot, error)
}
