// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	perr "github.com/kweimann/poe-stash-filter/internal/platform/errors"
	"github.com/kweimann/poe-stash-filter/internal/platform/logger"
)

// MaxBody caps decoded request bodies
const MaxBody = 1 << 20

type validation struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	vd   validation
)

// validate returns the shared validator, reporting fields by their json names
func validate() validation {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
			s, ok := fl.Field().Interface().(string)
			return ok && strings.TrimSpace(s) != ""
		})
		message(v, trans, "min", "{0} must be at least {1}")
		message(v, trans, "max", "{0} must be at most {1}")
		message(v, trans, "nonblank", "{0} must not be blank")

		vd = validation{v: v, trans: trans}
	})
	return vd
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// message overrides the translation of tag; {0} is the field and {1} the tag param
func message(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON decodes one JSON document of at most MaxBody bytes into T and validates it.
// Unknown fields, trailing data and an empty body are JSON errors. Validation failures
// carry the offending field
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.Get().Warn().Err(err).Msg("closing request body")
		}
	}()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, perr.JSONErrf("empty body")
		}
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}

	if err := validate().v.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.Get().Error().Err(inv).Msg("validator misuse")
			return dst, perr.JSONErrf("body is not an object")
		}
		field, msg := FieldMessage(err)
		return dst, perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
	}
	return dst, nil
}

// FieldMessage returns the first failing field and its translated message
func FieldMessage(err error) (field, msg string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(validate().trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
