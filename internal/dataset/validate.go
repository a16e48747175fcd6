package dataset

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/hotelpulse/schema"
)

var sectionIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("sectionid", func(fl validator.FieldLevel) bool {
		return sectionIDPattern.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks a bundle's struct tags plus the rules tags cannot express.
func Validate(b *Bundle) error {
	if err := validate.Struct(b); err != nil {
		return formatValidationError(err)
	}

	var problems []string
	for _, sec := range b.Sections {
		switch sec.Kind {
		case schema.StackedKind:
			if len(sec.Series) == 0 {
				problems = append(problems, fmt.Sprintf("section %s: stacked sections need at least one series", sec.ID))
			}
			seen := make(map[string]struct{}, len(sec.Series))
			for _, s := range sec.Series {
				if _, dup := seen[s.Name]; dup {
					problems = append(problems, fmt.Sprintf("section %s: duplicate series %q", sec.ID, s.Name))
				}
				seen[s.Name] = struct{}{}
			}
		case schema.TripletKind:
			if sec.Triplet.IsZero() {
				problems = append(problems, fmt.Sprintf("section %s: triplet sections need gross and cancellation figures", sec.ID))
			}
		}
		for role := range sec.Labels {
			if !isLabelRole(role) {
				problems = append(problems, fmt.Sprintf("section %s: unknown label role %q", sec.ID, role))
			}
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func isLabelRole(role schema.LabelRole) bool {
	for _, r := range schema.AllLabelRoles {
		if r == role {
			return true
		}
	}
	return false
}

// formatValidationError formats validation errors into readable messages
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// formatFieldError formats a single field validation error
func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color", field)
	case "sectionid":
		return fmt.Sprintf("%s must be lowercase letters, digits, '-' or '_'", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, e.Tag())
	}
}
