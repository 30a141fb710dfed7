package chat

import "github.com/JaimeStill/pdf-chat/pkg/openapi"

type spec struct {
	Chat    *openapi.Operation
	History *openapi.Operation
}

var Spec = spec{
	Chat: &openapi.Operation{
		Summary:     "Chat with selected PDF",
		Description: "Answer a message using the parsed text of the caller's selected PDF and recent conversation history",
		Security:    openapi.BearerAuth(),
		RequestBody: openapi.RequestBodyJSON("ChatRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Model reply", "ChatReply"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			409: openapi.ResponseRef("Conflict"),
			502: {Description: "Language model request failed"},
		},
	},
	History: &openapi.Operation{
		Summary:     "Chat history",
		Description: "Most recent chat messages for the caller, newest first",
		Security:    openapi.BearerAuth(),
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("limit", "integer", "Maximum messages to return (default from config, max 100)", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSONArray("Chat messages", "ChatMessage"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
}

func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"ChatRequest": {
			Type:     "object",
			Required: []string{"message"},
			Properties: map[string]*openapi.Property{
				"message": {Type: "string"},
			},
		},
		"ChatReply": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"reply":    {Type: "string"},
				"pdf_id":   {Type: "string", Format: "uuid"},
				"filename": {Type: "string"},
			},
		},
		"ChatMessage": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":         {Type: "integer", Format: "int64"},
				"pdf_id":     {Type: "string", Format: "uuid"},
				"direction":  {Type: "string", Description: "incoming or outgoing"},
				"message":    {Type: "string"},
				"created_at": {Type: "string", Format: "date-time"},
			},
		},
	}
}
