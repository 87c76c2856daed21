package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their koanf keys, so messages name the
// same keys the YAML files and APP_ variables use.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(validateWidget, WidgetConfig{})

	return v
}

// validateWidget rejects a request timeout that would let one fetch run into
// the next scheduled refresh.
func validateWidget(sl validator.StructLevel) {
	w, ok := sl.Current().Interface().(WidgetConfig)
	if !ok || w.RefreshInterval == 0 || w.RequestTimeout == 0 {
		return
	}

	if w.RequestTimeout >= w.RefreshInterval {
		sl.ReportError(w.RequestTimeout, "request_timeout", "RequestTimeout", "ltfield", "refresh_interval")
	}
}

// Validate checks c and lists every violation. Neither host starts with an
// invalid config.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		lines = append(lines, describe(fe))
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

func describe(fe validator.FieldError) string {
	key := fieldKey(fe.Namespace())
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		return fmt.Sprintf("%s is required when %s", key, param)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", key, param)
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", key, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", key, param)
	case "ltfield":
		return fmt.Sprintf("%s must be shorter than %s", key, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", key, param)
	case "url":
		return key + " must be a valid URL"
	case "startswith":
		return fmt.Sprintf("%s must start with %q", key, param)
	default:
		return fmt.Sprintf("%s failed validation: %s", key, fe.Tag())
	}
}

// fieldKey drops the root type from a namespace: "Config.widget.request_timeout"
// becomes "widget.request_timeout".
func fieldKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return key
}
