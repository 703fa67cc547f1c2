package domain

type PropertyType string

const (
	PropertyNumber         PropertyType = "Number"
	PropertyDecimal        PropertyType = "Decimal"
	PropertyBoolean        PropertyType = "Boolean"
	PropertyNumberArray    PropertyType = "NumberArray"
	PropertyStringArray    PropertyType = "StringArray"
	PropertyEnumArray      PropertyType = "EnumArray"
	PropertyActorArray     PropertyType = "ActorArray"
	PropertyString         PropertyType = "String"
	PropertyActor          PropertyType = "Actor"
	PropertyActorGroup     PropertyType = "ActorGroup"
	PropertyImage          PropertyType = "Image"
	PropertySound          PropertyType = "Sound"
	PropertyParticleEffect PropertyType = "ParticleEffect"
	PropertyColor          PropertyType = "Color"
	PropertyEnum           PropertyType = "Enum"
	PropertyCardDeck       PropertyType = "CardDeck"
)

// PropertyCategory groups property types by how their default text is decoded.
type PropertyCategory int

const (
	CategoryUnknown PropertyCategory = iota
	// CategoryJSON defaults are JSON text.
	CategoryJSON
	// CategoryRaw defaults are kept as the raw string.
	CategoryRaw
	// CategoryDeck defaults are ignored; the value starts as an empty list.
	CategoryDeck
)

func (t PropertyType) Category() PropertyCategory {
	switch t {
	case PropertyNumber, PropertyDecimal, PropertyBoolean,
		PropertyNumberArray, PropertyStringArray, PropertyEnumArray, PropertyActorArray:
		return CategoryJSON
	case PropertyString, PropertyActor, PropertyActorGroup, PropertyImage,
		PropertySound, PropertyParticleEffect, PropertyColor, PropertyEnum:
		return CategoryRaw
	case PropertyCardDeck:
		return CategoryDeck
	default:
		return CategoryUnknown
	}
}

func ValidPropertyType(t string) bool {
	return PropertyType(t).Category() != CategoryUnknown
}

// PropertyDef is one declared property of a behavior module.
type PropertyDef struct {
	VariableName string       `json:"variableName" yaml:"variableName"`
	Type         PropertyType `json:"type" yaml:"type"`
	DefaultValue string       `json:"defaultValue" yaml:"defaultValue"`
}

// SchemaProvider returns the declared properties of a module, in order.
type SchemaProvider interface {
	SchemaFor(key string) []PropertyDef
}
