package service

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"go.uber.org/zap"
)

var ErrMalformedSnapshot = errors.New("malformed snapshot")

// DatabaseStats summarizes the published brain index.
type DatabaseStats struct {
	Brains          int       `json:"brains"`
	Uses            int       `json:"uses"`
	Behaviors       int       `json:"behaviors"`
	SkippedUses     int       `json:"skipped_uses"`
	CollisionBrains int       `json:"collision_brains"`
	Resets          int64     `json:"resets"`
	LastResetAt     time.Time `json:"last_reset_at,omitempty"`
}

type brainIndex struct {
	brains     map[string]*Brain
	order      []string
	collisions []string
	behaviors  int
	uses       int
	skipped    int
	builtAt    time.Time
}

// Database holds every brain of the running project. Reset builds a new
// index and publishes it in one step, so readers see either the old or the
// new set of brains, never a mix.
type Database struct {
	registry domain.ModuleRegistry
	schemas  domain.SchemaProvider
	colors   domain.ColorDecoder
	logger   *zap.Logger

	resetMu sync.Mutex
	current atomic.Pointer[brainIndex]
	resets  atomic.Int64
}

func NewDatabase(registry domain.ModuleRegistry, schemas domain.SchemaProvider, colors domain.ColorDecoder, logger *zap.Logger) *Database {
	db := &Database{
		registry: registry,
		schemas:  schemas,
		colors:   colors,
		logger:   logger,
	}
	db.current.Store(&brainIndex{brains: make(map[string]*Brain)})
	return db
}

// Reset replaces every brain with the ones described by snapshot and returns
// the ids of brains that handle a collision-class message. Uses whose module
// is not registered are skipped. On error the previous brains stay in place.
func (db *Database) Reset(snapshot *domain.Snapshot) ([]string, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrMalformedSnapshot)
	}
	if len(snapshot.Brains) != len(snapshot.BrainIDs) {
		return nil, fmt.Errorf("%w: %d brains but %d brain ids",
			ErrMalformedSnapshot, len(snapshot.Brains), len(snapshot.BrainIDs))
	}

	db.resetMu.Lock()
	defer db.resetMu.Unlock()

	idx := &brainIndex{brains: make(map[string]*Brain, len(snapshot.Brains))}
	behaviors := make(map[string]*Behavior)
	deps := useDeps{schemas: db.schemas, colors: db.colors, logger: db.logger}

	for i, brainSnap := range snapshot.Brains {
		brainID := snapshot.BrainIDs[i]

		uses := make([]*BehaviorUse, 0, len(brainSnap.BehaviorUses))
		for _, rec := range brainSnap.BehaviorUses {
			behavior, ok := behaviors[rec.BehaviorURI]
			if !ok {
				table, found := db.registry.Resolve(rec.BehaviorURI)
				if !found {
					db.logger.Warn("skipping behavior use with unresolved module",
						zap.String("brain_id", brainID),
						zap.String("use_id", rec.ID),
						zap.String("behavior_uri", rec.BehaviorURI))
					idx.skipped++
					continue
				}
				behavior = newBehavior(rec.BehaviorURI, table)
				behaviors[rec.BehaviorURI] = behavior
			}

			use, err := newBehaviorUse(rec.ID, rec, behavior, deps)
			if err != nil {
				return nil, fmt.Errorf("brain %s use %s: %w", brainID, rec.ID, err)
			}
			uses = append(uses, use)
		}

		brain := NewBrain(brainID, uses)
		if prev, dup := idx.brains[brainID]; dup {
			idx.uses -= len(prev.uses)
		} else {
			idx.order = append(idx.order, brainID)
		}
		idx.brains[brainID] = brain
		idx.uses += len(uses)

		if handlesCollisions(brain) {
			idx.collisions = append(idx.collisions, brainID)
		}
	}

	idx.behaviors = len(behaviors)
	idx.builtAt = time.Now()
	db.current.Store(idx)
	db.resets.Add(1)

	db.logger.Info("behavior database reset",
		zap.Int("brains", len(idx.brains)),
		zap.Int("uses", idx.uses),
		zap.Int("behaviors", idx.behaviors),
		zap.Int("skipped_uses", idx.skipped),
		zap.Int("collision_brains", len(idx.collisions)))

	return copyStrings(idx.collisions), nil
}

func handlesCollisions(b *Brain) bool {
	for _, m := range domain.CollisionMessages() {
		if b.HasHandlersFor(m) {
			return true
		}
	}
	return false
}

func (db *Database) GetBrain(id string) (*Brain, bool) {
	b, ok := db.current.Load().brains[id]
	return b, ok
}

// BrainIDs returns brain ids in snapshot order.
func (db *Database) BrainIDs() []string {
	return copyStrings(db.current.Load().order)
}

// CollisionBrainIDs returns the result of the last successful Reset.
func (db *Database) CollisionBrainIDs() []string {
	return copyStrings(db.current.Load().collisions)
}

func (db *Database) Stats() DatabaseStats {
	idx := db.current.Load()
	return DatabaseStats{
		Brains:          len(idx.brains),
		Uses:            idx.uses,
		Behaviors:       idx.behaviors,
		SkippedUses:     idx.skipped,
		CollisionBrains: len(idx.collisions),
		Resets:          db.resets.Load(),
		LastResetAt:     idx.builtAt,
	}
}

func copyStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
