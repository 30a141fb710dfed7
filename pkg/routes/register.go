package routes

import (
	"github.com/JaimeStill/pdf-chat/pkg/openapi"
	"github.com/go-chi/chi/v5"
)

// Register mounts each group on r and records its operations in spec under basePath.
// r is expected to be mounted at basePath by the caller.
func Register(r chi.Router, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		group.AddToSpec(basePath, spec)
		mount(r, "", group)
	}
}

func mount(r chi.Router, parentPrefix string, group Group) {
	prefix := parentPrefix + group.Prefix

	r.Group(func(r chi.Router) {
		r.Use(group.Middleware...)

		for _, route := range group.Routes {
			r.MethodFunc(route.Method, prefix+route.Pattern, route.Handler)
		}

		for _, child := range group.Children {
			mount(r, prefix, child)
		}
	})
}
