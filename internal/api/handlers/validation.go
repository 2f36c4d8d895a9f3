package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/kenyagreatparty/kgp-backend/internal/constants"
	svc "github.com/kenyagreatparty/kgp-backend/internal/services"
)

var (
	phonePattern    = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)
	idNumberPattern = regexp.MustCompile(`^\d{8}$`)
)

// NewValidator builds the validator shared by all handlers, with the
// membership-specific rules registered: Kenyan county (exact lowercase
// match), phone shape and 8-digit national ID.
func NewValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")

	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, err
	}

	customRules := []struct {
		tag     string
		fn      validator.Func
		message string
	}{
		{
			tag: "county",
			fn: func(fl validator.FieldLevel) bool {
				return constants.IsValidCounty(fl.Field().String())
			},
			message: "{0} must be a valid county",
		},
		{
			tag: "phone",
			fn: func(fl validator.FieldLevel) bool {
				return phonePattern.MatchString(fl.Field().String())
			},
			message: "{0} must be a valid phone number",
		},
		{
			tag: "idnumber",
			fn: func(fl validator.FieldLevel) bool {
				return idNumberPattern.MatchString(fl.Field().String())
			},
			message: "{0} must be exactly 8 digits",
		},
	}

	for _, rule := range customRules {
		if err := validate.RegisterValidation(rule.tag, rule.fn); err != nil {
			return nil, nil, err
		}

		rule := rule
		err := validate.RegisterTranslation(rule.tag, trans,
			func(ut ut.Translator) error {
				return ut.Add(rule.tag, rule.message, true)
			},
			func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(rule.tag, fe.Field())
				return t
			},
		)
		if err != nil {
			return nil, nil, err
		}
	}

	return validate, trans, nil
}

func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusBadRequest,
			Code:    svc.CodeValidation,
			Message: fmt.Sprintf("invalid request body: %v", err),
		})
		return false
	}

	return h.validateStruct(w, r, dst)
}

// validateStruct reports every violation at once rather than stopping at the
// first failing field.
func (h *Handlers) validateStruct(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := h.validate.Struct(dst); err != nil {
		var fieldErrors []svc.FieldError
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			for _, fe := range ve {
				fieldErrors = append(fieldErrors, svc.FieldError{
					Field:   fe.Field(),
					Message: fe.Translate(h.trans),
				})
			}
		}

		h.errorResponse(w, r, &svc.APIError{
			Status:  http.StatusBadRequest,
			Code:    svc.CodeValidation,
			Message: "Input validation failed",
			Errors:  fieldErrors,
		})
		return false
	}

	return true
}
