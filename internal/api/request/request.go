// Package request holds the outbound DTOs. Each is validated client-side
// before the wire call so obvious mistakes never reach the server.
package request

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct-tag validation on any request DTO.
func Validate(req any) error {
	return validate.Struct(req)
}
