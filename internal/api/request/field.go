package request

import (
	"io"
)

// FieldUpload accompanies create/update as a multipart part. Reader may be
// nil on update to keep the existing image.
type FieldUpload struct {
	Filename string
	Reader   io.Reader
}

type CreateFieldRequest struct {
	Name        string  `validate:"required,min=2"`
	Description *string `validate:"omitempty,max=500"`
	Price       int64   `validate:"required,gt=0"`
}

type UpdateFieldRequest struct {
	Name        string  `validate:"required,min=2"`
	Description *string `validate:"omitempty,max=500"`
	Price       int64   `validate:"required,gt=0"`
}
