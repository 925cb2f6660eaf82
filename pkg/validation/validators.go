package validation

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-friendly labels
var FieldLabels = map[string]string{
	"Name":    "Name",
	"Email":   "Email",
	"Subject": "Subject",
	"Message": "Message",
}

// FormatValidationErrors converts validator errors into a field → message map
// suitable for the error envelope.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		label, ok := FieldLabels[e.Field()]
		if !ok {
			label = e.Field()
		}
		switch e.Tag() {
		case "required":
			out[e.Field()] = fmt.Sprintf("%s is required", label)
		case "email":
			out[e.Field()] = fmt.Sprintf("%s must be a valid email address", label)
		default:
			out[e.Field()] = fmt.Sprintf("%s is invalid", label)
		}
	}
	return out
}
