package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"go.uber.org/zap"
)

var (
	ErrUnknownPropertyType = errors.New("unknown property type")
	ErrInvalidDefault      = errors.New("invalid property default")
)

// BehaviorUse is one behavior attached to one actor. Its handled messages
// and handler lookups are computed once at construction; later property
// changes do not refresh them.
type BehaviorUse struct {
	id         string
	brainID    string
	behavior   *Behavior
	properties map[string]any

	handledMessages map[string]struct{}
	handlerInfos    map[string]domain.HandlerInfo
}

type useDeps struct {
	schemas domain.SchemaProvider
	colors  domain.ColorDecoder
	logger  *zap.Logger
}

func newBehaviorUse(id string, rec domain.UseSnapshot, behavior *Behavior, deps useDeps) (*BehaviorUse, error) {
	u := &BehaviorUse{
		id:         id,
		brainID:    rec.BrainID,
		behavior:   behavior,
		properties: make(map[string]any),
	}

	schema := deps.schemas.SchemaFor(behavior.URI())
	for _, def := range schema {
		v, err := defaultValue(def)
		if err != nil {
			return nil, fmt.Errorf("behavior %s property %s: %w", behavior.URI(), def.VariableName, err)
		}
		u.properties[def.VariableName] = v
	}

	for _, a := range rec.PropertyAssignments {
		var v any
		if err := json.Unmarshal([]byte(a.ValueJSON), &v); err != nil {
			deps.logger.Warn("skipping undecodable property assignment",
				zap.String("brain_id", rec.BrainID),
				zap.String("use_id", id),
				zap.String("property", a.PropertyName),
				zap.Error(err))
			continue
		}
		u.properties[a.PropertyName] = v
	}

	for _, def := range schema {
		if def.Type != domain.PropertyColor {
			continue
		}
		u.properties[def.VariableName] = decodeColor(deps.colors, u.properties[def.VariableName])
	}

	u.handledMessages = behavior.HandledMessageNames(u)
	u.handlerInfos = make(map[string]domain.HandlerInfo, len(u.handledMessages))
	for m := range u.handledMessages {
		h, legacy := behavior.ResolveHandler(m)
		u.handlerInfos[m] = domain.HandlerInfo{Handler: h, Legacy: legacy}
	}

	return u, nil
}

func defaultValue(def domain.PropertyDef) (any, error) {
	switch def.Type.Category() {
	case domain.CategoryJSON:
		var v any
		if err := json.Unmarshal([]byte(def.DefaultValue), &v); err != nil {
			return nil, fmt.Errorf("%w: %q as %s: %v", ErrInvalidDefault, def.DefaultValue, def.Type, err)
		}
		return v, nil
	case domain.CategoryRaw:
		return def.DefaultValue, nil
	case domain.CategoryDeck:
		return []any{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPropertyType, def.Type)
	}
}

func decodeColor(colors domain.ColorDecoder, v any) domain.Color {
	text, ok := v.(string)
	if !ok {
		return domain.FallbackColor
	}
	c, ok := colors.Decode(text)
	if !ok {
		return domain.FallbackColor
	}
	return c
}

func (u *BehaviorUse) ID() string {
	return u.id
}

func (u *BehaviorUse) BrainID() string {
	return u.brainID
}

func (u *BehaviorUse) BehaviorURI() string {
	return u.behavior.URI()
}

func (u *BehaviorUse) Behavior() *Behavior {
	return u.behavior
}

// Properties returns the materialized property values. Callers must not
// modify the map.
func (u *BehaviorUse) Properties() map[string]any {
	return u.properties
}

func (u *BehaviorUse) Property(name string) (any, bool) {
	v, ok := u.properties[name]
	return v, ok
}

func (u *BehaviorUse) CanHandle(message string) bool {
	_, ok := u.handledMessages[message]
	return ok
}

// HandledMessageNames returns the handled messages in sorted order.
func (u *BehaviorUse) HandledMessageNames() []string {
	names := make([]string, 0, len(u.handledMessages))
	for m := range u.handledMessages {
		names = append(names, m)
	}
	sort.Strings(names)
	return names
}

func (u *BehaviorUse) HandlerInfo(message string) (domain.HandlerInfo, bool) {
	info, ok := u.handlerInfos[message]
	return info, ok
}
