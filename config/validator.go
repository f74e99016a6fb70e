package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks a configuration. Implementations may apply rules
// stricter or looser than InferenceConfig's own.
type Validator interface {
	Validate(cfg *InferenceConfig) bool
	ValidationErrors(cfg *InferenceConfig) string
}

// DefaultValidator accepts every configuration. It is the extension point
// installed when no validator is supplied to NewManager.
type DefaultValidator struct{}

func (DefaultValidator) Validate(*InferenceConfig) bool { return true }

func (DefaultValidator) ValidationErrors(*InferenceConfig) string { return "" }

// RulesValidator applies InferenceConfig's own IsValid and ValidationErrors.
type RulesValidator struct{}

func (RulesValidator) Validate(cfg *InferenceConfig) bool { return cfg.IsValid() }

func (RulesValidator) ValidationErrors(cfg *InferenceConfig) string {
	return cfg.ValidationErrors()
}

// StructValidator checks the `validate` tags on InferenceConfig: required
// fields, port range, enum values for protocol, shared memory, log level
// and modality combination, threshold ranges and positive counts.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator returns a StructValidator.
func NewStructValidator() *StructValidator {
	return &StructValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *StructValidator) Validate(cfg *InferenceConfig) bool {
	return v.check(cfg) == nil
}

// ValidationErrors returns one "field: reason" entry per failed rule,
// joined with "; ".
func (v *StructValidator) ValidationErrors(cfg *InferenceConfig) string {
	err := v.check(cfg)
	if err == nil {
		return ""
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return strings.Join(msgs, "; ")
}

func (v *StructValidator) check(cfg *InferenceConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	return v.validate.Struct(cfg)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fmt.Sprint(fe.Value()))
	case "excludesall":
		return fmt.Sprintf("%s must not contain any of %q", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s (value %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value())
	}
}
