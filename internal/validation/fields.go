package validation

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/GLee998/church-database-bot/internal/models"
)

// tagDate проверяет, что строка разбирается как дата реестра
const tagDate = "rosterdate"

// Validator checks field values of a record against the roster schema.
type Validator struct {
	schema   *models.Schema
	validate *validator.Validate
}

// New creates a Validator bound to schema.
func New(schema *models.Schema) *Validator {
	v := validator.New()
	// RegisterValidation возвращает ошибку только для пустого имени тега
	_ = v.RegisterValidation(tagDate, func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})

	return &Validator{schema: schema, validate: v}
}

// Fields validates a set of field values and returns them in canonical form.
// For creates every required field must be present; for updates only the given keys are checked.
func (v *Validator) Fields(fields map[string]string, create bool) (map[string]string, error) {
	if len(fields) == 0 && !create {
		return nil, fmt.Errorf("%w: no fields to update", models.ErrInvalidValue)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	canonical := make(map[string]string, len(fields))
	var errs []error

	for _, key := range keys {
		def, ok := v.schema.Field(key)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", models.ErrUnknownField, key))
			continue
		}

		value := strings.TrimSpace(fields[key])
		if err := v.validate.Var(value, tagFor(def)); err != nil {
			errs = append(errs, fieldError(def, err))
			continue
		}

		c, err := def.Canonical(value)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		canonical[key] = c
	}

	if create {
		for _, def := range v.schema.Fields {
			if _, ok := fields[def.Key]; def.Required && !ok {
				errs = append(errs, fmt.Errorf("%w: %s", models.ErrRequiredField, def.Key))
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return canonical, nil
}

// tagFor builds the validator tag for a schema field
func tagFor(def models.FieldDef) string {
	var tags []string
	if def.Required {
		tags = append(tags, "required")
	} else {
		tags = append(tags, "omitempty")
	}

	switch def.Type {
	case models.FieldTypeDate:
		tags = append(tags, tagDate)
	case models.FieldTypeString:
		if def.MaxLen > 0 {
			tags = append(tags, "max="+strconv.Itoa(def.MaxLen))
		}
	}

	return strings.Join(tags, ",")
}

// fieldError переводит ошибку validator в ошибку схемы
func fieldError(def models.FieldDef, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %s: %v", models.ErrInvalidValue, def.Key, err)
	}

	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s", models.ErrRequiredField, def.Key)
	case "max":
		return fmt.Errorf("%w: %s must be at most %s characters", models.ErrInvalidValue, def.Key, e.Param())
	case tagDate:
		return fmt.Errorf("%w: %s must be a date (YYYY-MM-DD or DD.MM.YYYY)", models.ErrInvalidValue, def.Key)
	default:
		return fmt.Errorf("%w: %s is invalid", models.ErrInvalidValue, def.Key)
	}
}
