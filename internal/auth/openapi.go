package auth

import "github.com/JaimeStill/pdf-chat/pkg/openapi"

type spec struct {
	Register *openapi.Operation
	Login    *openapi.Operation
}

var Spec = spec{
	Register: &openapi.Operation{
		Summary:     "Register user",
		Description: "Create an account with an email and password",
		RequestBody: openapi.RequestBodyJSON("Credentials", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("User created", "User"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	Login: &openapi.Operation{
		Summary:     "Log in",
		Description: "Exchange credentials for a bearer access token",
		RequestBody: openapi.RequestBodyJSON("Credentials", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Access token", "Token"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Credentials": {
			Type:     "object",
			Required: []string{"email", "password"},
			Properties: map[string]*openapi.Property{
				"email":    {Type: "string", Format: "email"},
				"password": {Type: "string", Description: "8 to 72 characters"},
			},
		},
		"User": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":         {Type: "string", Format: "uuid"},
				"email":      {Type: "string", Format: "email"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
		"Token": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"access_token": {Type: "string"},
				"token_type":   {Type: "string", Example: "bearer"},
				"expires_at":   {Type: "string", Format: "date-time"},
			},
		},
	}
}
