package openapi

import "maps"

// NewComponents returns the shared error schema, the common error responses,
// and the bearer security scheme.
func NewComponents() *Components {
	errorContent := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Error")},
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Property{
					"error": {Type: "string", Description: "Error message"},
				},
				Required: []string{"error"},
			},
			"Message": {
				Type: "object",
				Properties: map[string]*Property{
					"message": {Type: "string", Description: "Confirmation message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":    {Description: "Invalid request", Content: errorContent},
			"Unauthorized":  {Description: "Missing or invalid bearer token", Content: errorContent},
			"NotFound":      {Description: "Resource not found", Content: errorContent},
			"Conflict":      {Description: "Resource state conflict", Content: errorContent},
			"InternalError": {Description: "Internal server error", Content: errorContent},
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"bearerAuth": {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
			},
		},
	}
}

// AddSchemas merges schemas into the component set.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges responses into the component set.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
