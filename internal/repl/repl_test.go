package repl_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lambdalisten/lambdalisten/internal/repl"
	"github.com/lambdalisten/lambdalisten/internal/schema"
)

func TestScenariosAllHaveUniqueNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range repl.Scenarios {
		assert.False(t, seen[s.Name], "duplicate scenario name %q", s.Name)
		seen[s.Name] = true
		assert.NotEmpty(t, s.Description)
		assert.NotNil(t, s.Build)
	}
}

func TestFindKnownScenario(t *testing.T) {
	_, ok := repl.Find("identity")
	assert.True(t, ok)
}

func TestFindUnknownScenario(t *testing.T) {
	_, ok := repl.Find("does-not-exist")
	assert.False(t, ok)
}

func TestHandleListAndHelpDoNotPanic(t *testing.T) {
	r := repl.New("test")
	var out bytes.Buffer
	assert.NotPanics(t, func() {
		r.Handle(":help", &out)
		r.Handle(":list", &out)
		r.Handle(":run identity", &out)
		r.Handle(":run var-not-found", &out)
		r.Handle(":run does-not-exist", &out)
	})
	assert.Contains(t, out.String(), "identity")
}

func TestHandleCompactTogglesSchemaMode(t *testing.T) {
	prev := schema.CompactMode
	t.Cleanup(func() { schema.CompactMode = prev })

	r := repl.New("test")
	var out bytes.Buffer

	r.Handle(":compact on", &out)
	assert.True(t, schema.CompactMode)
	assert.Contains(t, out.String(), "on")

	r.Handle(":compact off", &out)
	assert.False(t, schema.CompactMode)
}
