package module

import (
	"context"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"go.uber.org/zap"
)

// Builtin is a module shipped with the server together with its property schema.
type Builtin struct {
	Key        string
	Module     domain.Module
	Properties []domain.PropertyDef
}

// Builtins returns the modules every server registers at startup. Their
// handlers only log the delivery; simulation code supplies real behavior.
func Builtins(logger *zap.Logger) []Builtin {
	trace := func(module string) domain.Handler {
		return func(ctx context.Context, inv domain.Invocation) error {
			logger.Debug("builtin handler invoked",
				zap.String("module", module),
				zap.String("brain_id", inv.BrainID),
				zap.String("use_id", inv.UseID),
				zap.String("message", inv.Message))
			return nil
		}
	}

	return []Builtin{
		{
			Key: "builtin:bounce",
			Module: &Funcs{Handlers: map[string]domain.Handler{
				"onCollision":        trace("builtin:bounce"),
				"onTerrainCollision": trace("builtin:bounce"),
				"bounceFactor":       trace("builtin:bounce"),
			}},
			Properties: []domain.PropertyDef{
				{VariableName: "restitution", Type: domain.PropertyDecimal, DefaultValue: "0.8"},
				{VariableName: "enabled", Type: domain.PropertyBoolean, DefaultValue: "true"},
				{VariableName: "impactSound", Type: domain.PropertySound, DefaultValue: ""},
			},
		},
		{
			Key: "builtin:score",
			Module: &Funcs{Handlers: map[string]domain.Handler{
				"OnTouchEnter": trace("builtin:score"),
				"onTick":       trace("builtin:score"),
			}},
			Properties: []domain.PropertyDef{
				{VariableName: "points", Type: domain.PropertyNumber, DefaultValue: "10"},
				{VariableName: "scorers", Type: domain.PropertyActorGroup, DefaultValue: "player"},
				{VariableName: "flashColor", Type: domain.PropertyColor, DefaultValue: "#ffcc00"},
			},
		},
		{
			Key: "builtin:listener",
			Module: &Funcs{
				Handlers: map[string]domain.Handler{},
				Dynamic:  trace("builtin:listener"),
				Declare: func(properties map[string]any) []string {
					name, _ := properties["messageName"].(string)
					if name == "" {
						return nil
					}
					return []string{name}
				},
			},
			Properties: []domain.PropertyDef{
				{VariableName: "messageName", Type: domain.PropertyString, DefaultValue: ""},
				{VariableName: "responses", Type: domain.PropertyCardDeck, DefaultValue: "[]"},
			},
		},
		{
			Key: "builtin:spin",
			Module: &Funcs{Handlers: map[string]domain.Handler{
				"onTick": trace("builtin:spin"),
			}},
			Properties: []domain.PropertyDef{
				{VariableName: "degreesPerSecond", Type: domain.PropertyDecimal, DefaultValue: "90"},
				{VariableName: "axis", Type: domain.PropertyEnum, DefaultValue: "y"},
			},
		},
	}
}
