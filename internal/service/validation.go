package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	apperrors "github.com/3issane/PFETRACKCODE212/internal/errors"
)

const notBlankTag = "notblank"

// InputValidator checks request structs against their `validate` tags and
// reports failures with JSON field names and English messages.
type InputValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewInputValidator builds a validator with the JSON tag-name function and
// English translations registered.
func NewInputValidator() *InputValidator {
	v := validator.New()

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = entranslations.RegisterDefaultTranslations(v, trans)

	// Use JSON tag names for errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && strings.TrimSpace(s) != ""
	})
	_ = v.RegisterTranslation(notBlankTag, trans,
		func(ut.Translator) error { return nil },
		func(_ ut.Translator, fe validator.FieldError) string { return fe.Field() + " cannot be blank" },
	)

	return &InputValidator{validate: v, translator: trans}
}

// Struct validates s. The first failing field is returned as a validation AppError.
func (iv *InputValidator) Struct(s any) error {
	err := iv.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperrors.ValidationField(fe.Field(), fe.Translate(iv.translator))
	}
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, "invalid input")
}

// Fields validates s and returns every failing field keyed by JSON name.
func (iv *InputValidator) Fields(s any) map[string]string {
	err := iv.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(iv.translator)
	}
	return out
}
