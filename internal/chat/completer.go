package chat

import "context"

// Role identifies the author of a prompt turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one prior exchange passed to the model, oldest first.
type Turn struct {
	Role Role
	Text string
}

// Prompt is a single completion request.
type Prompt struct {
	System  string
	History []Turn
	Message string
}

// Completer produces a model reply for a prompt.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}
