package domain

import "context"

// Handler-name prefixes. They differ only in the case of the first letter and
// both are two characters long; module authors rely on this exact spelling.
const (
	HandlerPrefix       = "on"
	LegacyHandlerPrefix = "On"
)

// Collision-class message names.
const (
	MessageCollision        = "Collision"
	MessageTouchEnter       = "TouchEnter"
	MessageTerrainCollision = "TerrainCollision"
)

// CollisionMessages returns the message names that signal physical contact.
func CollisionMessages() []string {
	return []string{MessageCollision, MessageTouchEnter, MessageTerrainCollision}
}

// Invocation carries one message delivery to a handler.
type Invocation struct {
	BrainID    string         `json:"brain_id"`
	UseID      string         `json:"use_id"`
	Message    string         `json:"message"`
	Properties map[string]any `json:"properties,omitempty"`
	Args       map[string]any `json:"args,omitempty"`
}

// Handler is a module function reacting to a named message.
type Handler func(ctx context.Context, inv Invocation) error

// HandlerInfo is a resolved handler plus the calling convention it was
// declared under. Handler is nil when a message was declared dynamically by a
// module that has no dynamic handler.
type HandlerInfo struct {
	Handler Handler
	Legacy  bool
}

// Module is the callable surface of one behavior module.
type Module interface {
	// Exports returns the module's exported functions keyed by full name,
	// e.g. "onCollision" or "OnTick".
	Exports() map[string]Handler
	// DynamicHandler returns the catch-all handler, or nil.
	DynamicHandler() Handler
	// DeclareDynamicMessages returns the extra message names a configured
	// instance handles, or nil when the module declares none.
	DeclareDynamicMessages(properties map[string]any) []string
}

// CapabilityTable is a module's handler surface indexed by message name.
// It is built once when the module is registered.
type CapabilityTable struct {
	Key            string
	Module         Module
	Current        map[string]Handler
	Legacy         map[string]Handler
	StaticMessages []string
}

// ModuleRegistry resolves a behavior URI to its capability table.
type ModuleRegistry interface {
	Resolve(key string) (*CapabilityTable, bool)
}
