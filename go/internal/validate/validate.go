// Package validate wraps go-playground/validator with English messages keyed by json field names.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

// Error is returned when a struct fails validation. It marshals to the field messages.
type Error struct {
	Messages []string `json:"messages"`
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, "; ")
}

// Struct validates obj against its `validate` tags.
func Struct(obj any) error {
	lazyinit()

	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		messages = append(messages, fe.Translate(translator))
	}
	return &Error{Messages: messages}
}

// IsValidationError reports whether err came from Struct.
func IsValidationError(err error) bool {
	var vErr *Error
	return errors.As(err, &vErr)
}

func lazyinit() {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		locale := en.New()
		uni := ut.New(locale, locale)
		translator, _ = uni.GetTranslator("en")

		_ = en_translations.RegisterDefaultTranslations(validate, translator)
		_ = validate.RegisterTranslation("required", translator, func(ut ut.Translator) error {
			return ut.Add("required", "{0} is required", true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T("required", fe.Field())
			return t
		})
	})
}
