package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	binding.EnableDecoderDisallowUnknownFields = true
}

// fieldRule names the codes reported for one request field. Missing is
// used when a required field is absent, Invalid when the value has the
// wrong JSON type or fails a format check.
type fieldRule struct {
	Missing string
	Invalid string
	Message string
}

type fieldRules map[string]fieldRule

const codeInvalidBody = "INVALID_REQUEST_BODY"

// newValidator reports fields by their json or form name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})

	mustRegister(v, "iata", func(fl validator.FieldLevel) bool {
		_, ok := domain.NormalizeAirportCode(fl.Field().String())
		return ok
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// bindJSON decodes and validates the request body, translating failures
// into coded validation errors.
func bindJSON(c *gin.Context, v *validator.Validate, req any, rules fieldRules) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return decodeError(err, rules)
	}
	if err := v.Struct(req); err != nil {
		return fieldError(err, rules)
	}
	return nil
}

func decodeError(err error, rules fieldRules) *domain.Error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		if rule, ok := rules[typeErr.Field]; ok {
			return domain.NewValidationError(rule.Invalid, rule.Message)
		}
		return domain.NewValidationError(codeInvalidBody, fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}
	return domain.NewValidationError(codeInvalidBody, "Invalid request body: "+err.Error())
}

// fieldError reports one failure: the first missing field if any, else
// the first failing field in declaration order.
func fieldError(err error, rules fieldRules) *domain.Error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.NewValidationError(codeInvalidBody, err.Error())
	}

	chosen := verrs[0]
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			chosen = fe
			break
		}
	}

	rule, ok := rules[chosen.Field()]
	if !ok {
		return domain.NewValidationError(codeInvalidBody, fmt.Sprintf("%s failed %s validation", chosen.Field(), chosen.Tag()))
	}
	if chosen.Tag() == "required" && rule.Missing != "" {
		return domain.NewValidationError(rule.Missing, chosen.Field()+" is required")
	}
	return domain.NewValidationError(rule.Invalid, rule.Message)
}
