package contract

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/mark3labs/mcp-go/mcp"
)

// propertyOption converts one request body property into an MCP tool argument.
func propertyOption(name string, schema *openapi3.SchemaRef, required bool) mcp.ToolOption {
	if schema == nil || schema.Value == nil || schema.Value.Type == nil {
		return mcp.WithObject(name, baseOptions(schema, required)...)
	}

	opts := baseOptions(schema, required)
	s := schema.Value

	switch {
	case s.Type.Includes(openapi3.TypeString):
		if len(s.Enum) > 0 {
			values := make([]string, 0, len(s.Enum))
			for _, v := range s.Enum {
				if str, ok := v.(string); ok {
					values = append(values, str)
				}
			}
			opts = append(opts, mcp.Enum(values...))
		}
		if s.MinLength != 0 {
			opts = append(opts, mcp.MinLength(int(s.MinLength)))
		}
		if s.MaxLength != nil {
			opts = append(opts, mcp.MaxLength(int(*s.MaxLength)))
		}
		if s.Pattern != "" {
			opts = append(opts, mcp.Pattern(s.Pattern))
		}
		return mcp.WithString(name, opts...)

	case s.Type.Includes(openapi3.TypeBoolean):
		return mcp.WithBoolean(name, opts...)

	case s.Type.Includes(openapi3.TypeNumber), s.Type.Includes(openapi3.TypeInteger):
		if s.Min != nil {
			opts = append(opts, mcp.Min(*s.Min))
		}
		if s.Max != nil {
			opts = append(opts, mcp.Max(*s.Max))
		}
		return mcp.WithNumber(name, opts...)

	case s.Type.Includes(openapi3.TypeArray):
		if s.Items != nil {
			opts = append(opts, mcp.Items(jsonSchema(s.Items)))
		}
		return mcp.WithArray(name, opts...)

	default:
		if len(s.Properties) > 0 {
			props := make(map[string]any, len(s.Properties))
			for propName, prop := range s.Properties {
				props[propName] = jsonSchema(prop)
			}
			opts = append(opts, mcp.Properties(props))
		}
		if s.AdditionalProperties.Has != nil && *s.AdditionalProperties.Has {
			opts = append(opts, mcp.AdditionalProperties(true))
		}
		return mcp.WithObject(name, opts...)
	}
}

func baseOptions(schema *openapi3.SchemaRef, required bool) []mcp.PropertyOption {
	var opts []mcp.PropertyOption
	if schema != nil && schema.Value != nil && schema.Value.Description != "" {
		opts = append(opts, mcp.Description(schema.Value.Description))
	}
	if required {
		opts = append(opts, mcp.Required())
	}
	return opts
}

// jsonSchema renders a nested schema as a plain JSON Schema map.
func jsonSchema(schema *openapi3.SchemaRef) map[string]any {
	out := map[string]any{}
	if schema == nil || schema.Value == nil {
		return out
	}
	s := schema.Value

	if s.Type != nil && len(s.Type.Slice()) > 0 {
		out["type"] = s.Type.Slice()[0]
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for name, prop := range s.Properties {
			props[name] = jsonSchema(prop)
		}
		out["properties"] = props
	}
	if len(s.Required) > 0 {
		out["required"] = s.Required
	}
	if s.Items != nil {
		out["items"] = jsonSchema(s.Items)
	}
	if s.AdditionalProperties.Has != nil && *s.AdditionalProperties.Has {
		out["additionalProperties"] = true
	}
	return out
}
