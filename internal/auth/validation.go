package auth

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72
)

// Validate checks the credentials shape. Email is normalized in place.
func (c *Credentials) Validate() error {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))

	return validation.ValidateStruct(c,
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.Password, validation.Required, validation.Length(minPasswordLength, maxPasswordLength)),
	)
}
