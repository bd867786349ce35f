// Package contract holds the OpenAPI description of the sync service REST
// API. It checks backend responses against it and derives MCP tool
// definitions from its operations.
package contract

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/brizzai/mcp-sync-console/internal/logger"
	"github.com/brizzai/mcp-sync-console/internal/requester"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

//go:embed openapi.yaml
var embeddedSpec []byte

// Operation is one documented endpoint together with the MCP tool that
// exposes it.
type Operation struct {
	ID    string
	Route requester.Route
	Tool  mcp.Tool
}

// Contract is a parsed and validated API description.
type Contract struct {
	doc        *openapi3.T
	router     routers.Router
	operations []Operation
}

// Load parses the embedded API description.
func Load() (*Contract, error) {
	return LoadData(embeddedSpec)
}

// LoadData parses an OpenAPI 3 document in JSON or YAML.
func LoadData(data []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API contract: %w", err)
	}
	if doc.OpenAPI == "" || !strings.HasPrefix(doc.OpenAPI, "3.") {
		return nil, fmt.Errorf("unsupported OpenAPI version: %q", doc.OpenAPI)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("invalid API contract: %w", err)
	}

	c := &Contract{doc: doc, router: router}
	if err := c.processOperations(); err != nil {
		return nil, err
	}
	logger.Debug("Loaded API contract", zap.Int("operations", len(c.operations)))
	return c, nil
}

// Operations returns every documented operation ordered by path, then method.
func (c *Contract) Operations() []Operation {
	out := make([]Operation, len(c.operations))
	copy(out, c.operations)
	return out
}

// Operation looks up an operation by its operationId.
func (c *Contract) Operation(id string) (Operation, bool) {
	for _, op := range c.operations {
		if op.ID == id {
			return op, true
		}
	}
	return Operation{}, false
}

// HasRoute reports whether route is documented.
func (c *Contract) HasRoute(route requester.Route) bool {
	for _, op := range c.operations {
		if op.Route.Method == route.Method && op.Route.Path == route.Path {
			return true
		}
	}
	return false
}

func (c *Contract) processOperations() error {
	for path, pathItem := range c.doc.Paths.Map() {
		for method, operation := range pathItem.Operations() {
			if operation.OperationID == "" {
				return fmt.Errorf("%s %s has no operationId", method, path)
			}
			route := requester.Route{
				Method:      method,
				Path:        path,
				Description: describe(operation),
			}
			c.operations = append(c.operations, Operation{
				ID:    operation.OperationID,
				Route: route,
				Tool:  generateTool(operation, route),
			})
		}
	}

	sort.Slice(c.operations, func(i, j int) bool {
		a, b := c.operations[i].Route, c.operations[j].Route
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Method < b.Method
	})
	return nil
}

func describe(operation *openapi3.Operation) string {
	if operation.Description != "" {
		return operation.Description
	}
	return operation.Summary
}

// generateTool builds an MCP tool named after the operationId. Each property
// of the JSON request body becomes a top-level tool argument.
func generateTool(operation *openapi3.Operation, route requester.Route) mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(fmt.Sprintf("%s\n\n%s %s", route.Description, route.Method, route.Path)),
	}

	body := bodySchema(operation)
	if body != nil && body.Value != nil {
		required := make(map[string]bool, len(body.Value.Required))
		for _, name := range body.Value.Required {
			required[name] = true
		}

		names := make([]string, 0, len(body.Value.Properties))
		for name := range body.Value.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			opts = append(opts, propertyOption(name, body.Value.Properties[name], required[name]))
		}
	}

	return mcp.NewTool(operation.OperationID, opts...)
}

// bodySchema returns the application/json request body schema, if any.
func bodySchema(operation *openapi3.Operation) *openapi3.SchemaRef {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	media := operation.RequestBody.Value.Content.Get("application/json")
	if media == nil {
		return nil
	}
	return media.Schema
}
