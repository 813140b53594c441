package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var validate *validator.Validate
var translator ut.Translator

func init() {
	validate = validator.New()
	var ok bool
	translator, ok = ut.New(en.New(), en.New()).GetTranslator("en")
	if !ok {
		panic("client: failed to get 'en' translator")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, translator); err != nil {
		panic(err)
	}
}

// FieldError represents a single validation error for an option value.
type FieldError struct {
	Field string
	Err   string
}

// Error implements the error interface.
func (fe *FieldError) Error() string {
	return fe.Field + ": " + fe.Err
}

// validateVar checks an option value against the validator tag.
func validateVar(field string, val any, tag string) error {
	err := validate.Var(val, tag)
	if err == nil {
		return nil
	}

	var verrors validator.ValidationErrors
	if !errors.As(err, &verrors) || len(verrors) == 0 {
		return fmt.Errorf("validating %s: %w", field, err)
	}

	return &FieldError{
		Field: field,
		Err:   customErrForTag(verrors[0].Tag(), verrors[0]),
	}
}

func customErrForTag(tag string, verror validator.FieldError) string {
	switch tag {
	case "required":
		return "must not be empty"
	case "file":
		return "must be an existing file"
	default:
		// Var validation has no field name, so the translation starts with a space.
		return strings.TrimSpace(verror.Translate(translator))
	}
}
