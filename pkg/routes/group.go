// Package routes declares HTTP route groups once and uses the declarations
// both to mount handlers on a chi router and to populate the OpenAPI document.
package routes

import (
	"net/http"

	"github.com/JaimeStill/pdf-chat/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Middleware applies to every route in the group and its children.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Middleware  []func(http.Handler) http.Handler
	Routes      []Route
	Children    []Group
}

// Route represents an HTTP route with method, pattern, and handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// AddToSpec adds every documented route in the group to spec, prefixing paths with basePath.
// Operations without explicit tags inherit the group's tags.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.addToSpec(basePath+g.Prefix, g.Tags, spec)
}

func (g Group) addToSpec(prefix string, tags []string, spec *openapi.Spec) {
	for _, route := range g.Routes {
		if route.OpenAPI == nil {
			continue
		}

		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}

		spec.AddOperation(prefix+route.Pattern, route.Method, op)
	}

	for _, child := range g.Children {
		childTags := child.Tags
		if len(childTags) == 0 {
			childTags = tags
		}
		child.addToSpec(prefix+child.Prefix, childTags, spec)
	}
}
