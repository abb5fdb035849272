package resume

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the minimal completeness contract: a name is present and every record in
// every section has its required fields. Field formats (email, phone) are not checked.
func (d *Document) Validate() error {
	if d == nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "document is nil"}}}
	}
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{Errors: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.Namespace(),
			Message: fmt.Sprintf("failed %q check", fe.Tag()),
		})
	}
	return out
}
