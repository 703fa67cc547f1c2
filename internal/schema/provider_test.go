package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Harshitk-cp/brainbase/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProvider_SetAndSchemaFor(t *testing.T) {
	p := NewProvider()
	defs := []domain.PropertyDef{{VariableName: "speed", Type: domain.PropertyNumber, DefaultValue: "3"}}
	p.Set("mod", defs)

	defs[0].VariableName = "mutated"
	got := p.SchemaFor("mod")
	require.Len(t, got, 1)
	assert.Equal(t, "speed", got[0].VariableName)

	assert.Nil(t, p.SchemaFor("unknown"))
}

func TestProvider_LoadFileYAML(t *testing.T) {
	path := writeFile(t, "schemas.yaml", `
behaviors:
  - uri: builtin:door
    properties:
      - variableName: open
        type: Boolean
        defaultValue: "false"
      - variableName: tint
        type: Color
        defaultValue: "#00ff00"
  - uri: builtin:empty
`)

	p := NewProvider()
	n, err := p.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	door := p.SchemaFor("builtin:door")
	require.Len(t, door, 2)
	assert.Equal(t, domain.PropertyDef{VariableName: "open", Type: domain.PropertyBoolean, DefaultValue: "false"}, door[0])
	assert.Equal(t, domain.PropertyColor, door[1].Type)
	assert.Empty(t, p.SchemaFor("builtin:empty"))
}

func TestProvider_LoadFileJSON(t *testing.T) {
	path := writeFile(t, "schemas.json", `{"behaviors": [{"uri": "x", "properties": [{"variableName": "n", "type": "Weird", "defaultValue": "1"}]}]}`)

	p := NewProvider()
	_, err := p.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, domain.PropertyType("Weird"), p.SchemaFor("x")[0].Type)
}

func TestProvider_LoadFileErrors(t *testing.T) {
	p := NewProvider()

	_, err := p.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = p.LoadFile(writeFile(t, "bad.yaml", "behaviors: [\n"))
	assert.Error(t, err)

	_, err = p.LoadFile(writeFile(t, "nouri.yaml", "behaviors:\n  - properties: []\n"))
	assert.Error(t, err)
}
