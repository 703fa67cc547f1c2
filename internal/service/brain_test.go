package service

import (
	"testing"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"github.com/Harshitk-cp/brainbase/internal/module"
)

func TestBrain_Aggregation(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "bounce", &module.Funcs{Handlers: map[string]domain.Handler{"onCollision": env.handler("bounce")}})
	env.register(t, "spin", &module.Funcs{Handlers: map[string]domain.Handler{"OnTick": env.handler("spin")}})
	env.register(t, "idle", &module.Funcs{})

	_, err := env.db.Reset(snapshotOf(map[string][]domain.UseSnapshot{
		"actor": {use("u1", "bounce", "actor"), use("u2", "spin", "actor"), use("u3", "idle", "actor")},
	}, "actor"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	b, ok := env.db.GetBrain("actor")
	if !ok {
		t.Fatal("expected brain 'actor'")
	}
	if b.ID() != "actor" {
		t.Errorf("expected id 'actor', got %s", b.ID())
	}

	for _, m := range []string{"Collision", "Tick"} {
		if !b.HasHandlersFor(m) {
			t.Errorf("expected brain to handle %s", m)
		}
	}
	if b.HasHandlersFor("TouchEnter") {
		t.Error("brain should not handle TouchEnter")
	}

	got := b.HandledMessageNames()
	if len(got) != 2 || got[0] != "Collision" || got[1] != "Tick" {
		t.Errorf("unexpected handled messages %v", got)
	}
}

func TestBrain_ForEachUseHandlingVisitsEveryUse(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "bounce", &module.Funcs{Handlers: map[string]domain.Handler{"onCollision": env.handler("bounce")}})
	env.register(t, "idle", &module.Funcs{})

	_, err := env.db.Reset(snapshotOf(map[string][]domain.UseSnapshot{
		"actor": {use("u1", "idle", "actor"), use("u2", "bounce", "actor"), use("u3", "idle", "actor")},
	}, "actor"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	b, _ := env.db.GetBrain("actor")

	var visited []string
	b.ForEachUseHandling("Collision", func(u *BehaviorUse) {
		visited = append(visited, u.ID())
	})

	want := []string{"u1", "u2", "u3"}
	if len(visited) != len(want) {
		t.Fatalf("expected %d visits, got %v", len(want), visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visit %d: expected %s, got %s", i, want[i], visited[i])
		}
	}
}

func TestBrain_UseLookup(t *testing.T) {
	b := NewBrain("empty", nil)
	if b.HasUse("u1") {
		t.Error("empty brain should have no uses")
	}
	if _, ok := b.GetUse("u1"); ok {
		t.Error("GetUse on empty brain should report absent")
	}
	if b.HasHandlersFor("Collision") {
		t.Error("empty brain should handle nothing")
	}

	u := &BehaviorUse{id: "u1", handledMessages: map[string]struct{}{"Tick": {}}}
	b = NewBrain("one", []*BehaviorUse{u})
	if !b.HasUse("u1") {
		t.Error("expected use u1")
	}
	got, ok := b.GetUse("u1")
	if !ok || got != u {
		t.Error("GetUse returned wrong use")
	}
	if !b.HasHandlersFor("Tick") {
		t.Error("expected brain to handle Tick")
	}
}
