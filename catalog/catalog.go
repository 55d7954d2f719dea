// Package catalog holds the fixed tool contract the bridge exposes. The
// catalog and the backend routing are kept in lockstep: every name listed
// here is forwardable, and the bridge forwards nothing it does not list.
package catalog

import "github.com/tdmcp/tdbridge/schema"

// Tools returns the tool catalog. The order is presentation-only.
func Tools() []schema.Tool {
	return append([]schema.Tool(nil), tools...)
}

// Has reports whether name is part of the catalog.
func Has(name string) bool {
	for i := range tools {
		if tools[i].Name == name {
			return true
		}
	}
	return false
}

var tools = []schema.Tool{
	{
		Name:        "create",
		Description: "Create an operator in the TouchDesigner network, optionally positioning it and wiring it to an existing operator",
		InputSchema: schema.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"type":       prop("string", "Operator type, e.g. circle, noise, sphere, container"),
				"name":       prop("string", "Operator name; TouchDesigner picks one when omitted"),
				"parent":     prop("string", "Path of the parent component, defaults to /project1"),
				"properties": prop("object", "Initial parameter values keyed by parameter name"),
				"nodex":      prop("integer", "Horizontal node position in the network editor"),
				"nodey":      prop("integer", "Vertical node position in the network editor"),
				"auto_connect": prop("boolean",
					"Let TouchDesigner pick a sensible input wiring for the new operator"),
				"connect_source":    prop("string", "Path of an operator to wire into the new one"),
				"connect_parameter": prop("string", "Input parameter to receive the connection, e.g. input1"),
			},
			Required: []string{"type"},
		},
	},
	{
		Name:        "delete",
		Description: "Delete the operator at the given path",
		InputSchema: schema.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": prop("string", "Absolute operator path, e.g. /project1/circle1"),
			},
			Required: []string{"path"},
		},
	},
	{
		Name:        "set",
		Description: "Set a parameter value on the operator at the given path",
		InputSchema: schema.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path":      prop("string", "Absolute operator path"),
				"parameter": prop("string", "Parameter name, e.g. radiusx"),
				"value":     map[string]interface{}{"description": "New parameter value"},
			},
			Required: []string{"path", "parameter", "value"},
		},
	},
	{
		Name:        "get",
		Description: "Get information about an operator, or a single parameter value when parameter is given",
		InputSchema: schema.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path":      prop("string", "Absolute operator path"),
				"parameter": prop("string", "Optional parameter name to read"),
			},
			Required: []string{"path"},
		},
	},
	{
		Name:        "list",
		Description: "List child operators under the given path",
		InputSchema: schema.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": prop("string", "Component path to list, defaults to /"),
			},
		},
	},
	{
		Name:        "execute_python",
		Description: "Execute Python code inside TouchDesigner's scripting context",
		InputSchema: schema.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"code":    prop("string", "Python source to run"),
				"context": prop("string", "Operator path used as execution context, defaults to /"),
			},
			Required: []string{"code"},
		},
	},
	{
		Name:        "list_parameters",
		Description: "List the parameter names of the operator at the given path, along with its type",
		InputSchema: schema.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": prop("string", "Absolute operator path, defaults to /"),
			},
		},
	},
}

func prop(kind, description string) map[string]interface{} {
	return map[string]interface{}{"type": kind, "description": description}
}
