package handlers

import (
	"net/http"

	"github.com/Harshitk-cp/brainbase/internal/service"
	"github.com/go-chi/chi/v5"
)

type BrainHandler struct {
	db *service.Database
}

func NewBrainHandler(db *service.Database) *BrainHandler {
	return &BrainHandler{db: db}
}

type handlerView struct {
	Legacy     bool `json:"legacy"`
	HasHandler bool `json:"has_handler"`
}

type useView struct {
	ID              string                 `json:"id"`
	BrainID         string                 `json:"brain_id"`
	BehaviorURI     string                 `json:"behavior_uri"`
	Properties      map[string]any         `json:"properties"`
	HandledMessages []string               `json:"handled_messages"`
	Handlers        map[string]handlerView `json:"handlers"`
}

type brainView struct {
	ID              string    `json:"id"`
	HandledMessages []string  `json:"handled_messages"`
	Uses            []useView `json:"uses"`
}

func newUseView(u *service.BehaviorUse) useView {
	v := useView{
		ID:              u.ID(),
		BrainID:         u.BrainID(),
		BehaviorURI:     u.BehaviorURI(),
		Properties:      u.Properties(),
		HandledMessages: u.HandledMessageNames(),
		Handlers:        make(map[string]handlerView),
	}
	for _, m := range v.HandledMessages {
		info, _ := u.HandlerInfo(m)
		v.Handlers[m] = handlerView{Legacy: info.Legacy, HasHandler: info.Handler != nil}
	}
	return v
}

func newBrainView(b *service.Brain) brainView {
	v := brainView{
		ID:              b.ID(),
		HandledMessages: b.HandledMessageNames(),
		Uses:            make([]useView, 0, len(b.Uses())),
	}
	for _, u := range b.Uses() {
		v.Uses = append(v.Uses, newUseView(u))
	}
	return v
}

func (h *BrainHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"brain_ids": h.db.BrainIDs(),
		"stats":     h.db.Stats(),
	})
}

func (h *BrainHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	b, ok := h.db.GetBrain(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "brain not found")
		return
	}
	writeJSON(w, http.StatusOK, newBrainView(b))
}

func (h *BrainHandler) GetUse(w http.ResponseWriter, r *http.Request) {
	b, ok := h.db.GetBrain(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "brain not found")
		return
	}
	u, ok := b.GetUse(chi.URLParam(r, "useID"))
	if !ok {
		writeError(w, http.StatusNotFound, "behavior use not found")
		return
	}
	writeJSON(w, http.StatusOK, newUseView(u))
}

type useHandlingView struct {
	UseID      string `json:"use_id"`
	CanHandle  bool   `json:"can_handle"`
	Legacy     bool   `json:"legacy"`
	HasHandler bool   `json:"has_handler"`
}

// Handlers reports which uses of a brain would receive ?message=.
func (h *BrainHandler) Handlers(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		writeError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	b, ok := h.db.GetBrain(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "brain not found")
		return
	}

	uses := []useHandlingView{}
	b.ForEachUseHandling(message, func(u *service.BehaviorUse) {
		info, found := u.HandlerInfo(message)
		uses = append(uses, useHandlingView{
			UseID:      u.ID(),
			CanHandle:  u.CanHandle(message),
			Legacy:     info.Legacy,
			HasHandler: found && info.Handler != nil,
		})
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"brain_id": b.ID(),
		"message":  message,
		"handled":  b.HasHandlersFor(message),
		"uses":     uses,
	})
}

func (h *BrainHandler) Collisions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"brain_ids": h.db.CollisionBrainIDs(),
	})
}
