package module

import "github.com/Harshitk-cp/brainbase/internal/domain"

// DeclareFunc computes the messages a configured instance handles dynamically.
type DeclareFunc func(properties map[string]any) []string

// Funcs is a Module assembled from plain Go functions.
type Funcs struct {
	Handlers map[string]domain.Handler
	Dynamic  domain.Handler
	Declare  DeclareFunc
}

func (f *Funcs) Exports() map[string]domain.Handler {
	return f.Handlers
}

func (f *Funcs) DynamicHandler() domain.Handler {
	return f.Dynamic
}

func (f *Funcs) DeclareDynamicMessages(properties map[string]any) []string {
	if f.Declare == nil {
		return nil
	}
	return f.Declare(properties)
}
