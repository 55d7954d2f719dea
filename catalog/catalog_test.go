package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTools(t *testing.T) {
	tools := Tools()
	assert.NotEmpty(t, tools)

	seen := map[string]bool{}
	for _, tool := range tools {
		assert.False(t, seen[tool.Name], "duplicate tool name: %v", tool.Name)
		seen[tool.Name] = true
		assert.NotEmpty(t, tool.Description, "tool %v has no description", tool.Name)
		assert.Equal(t, "object", tool.InputSchema.Type, "tool %v schema is not an object", tool.Name)
		for _, required := range tool.InputSchema.Required {
			_, ok := tool.InputSchema.Properties[required]
			assert.True(t, ok, "tool %v requires undeclared property %v", tool.Name, required)
		}
	}
}

func TestToolsIsACopy(t *testing.T) {
	tools := Tools()
	tools[0].Name = "mutated"
	assert.NotEqual(t, "mutated", Tools()[0].Name)
}

func TestHas(t *testing.T) {
	var testCases = []struct {
		description string
		name        string
		expect      bool
	}{
		{description: "catalog tool", name: "create", expect: true},
		{description: "catalog tool", name: "execute_python", expect: true},
		{description: "catalog tool", name: "list_parameters", expect: true},
		{description: "unknown tool", name: "render_frame", expect: false},
		{description: "empty name", name: "", expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, Has(testCase.name), testCase.description)
	}
}
