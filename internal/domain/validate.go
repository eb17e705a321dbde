package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks an entity's field constraints and returns the first
// violation as a *ValidationError. Related entities that happen to be loaded
// are not validated.
func Validate(e Entity) error {
	applyDefaults(e)
	switch v := e.(type) {
	case *GuildTag:
		if !ValidTag(v.Value) {
			return NewValidationError("value", fmt.Sprintf("%q is not a valid choice", v.Value), ErrInvalidTag)
		}
	case *GuildFame:
		if v.Value != Fame && v.Value != Defame {
			return NewValidationError("value", "must be 1 or -1", ErrInvalidFame)
		}
	}
	if err := validatorInstance().StructExcept(e, relationFields(e)...); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return NewValidationError(fe.Field(), describeFieldError(fe), nil)
		}
		return NewValidationError("", err.Error(), nil)
	}
	return nil
}

// applyDefaults fills quantity style fields whose zero value means "unset".
func applyDefaults(e Entity) {
	switch v := e.(type) {
	case *QuestReward:
		if v.Quantity == 0 {
			v.Quantity = 1
		}
	case *CraftingIngredient:
		if v.Quantity == 0 {
			v.Quantity = 1
		}
	case *CraftingRecipe:
		if v.ResultQuantity == 0 {
			v.ResultQuantity = 1
		}
	}
}

// relationFields lists the struct fields holding loaded relations so that
// validation stays on the entity itself.
func relationFields(e Entity) []string {
	t := reflect.TypeOf(e)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	var out []string
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Pointer:
			if f.Type.Elem().Kind() == reflect.Struct {
				out = append(out, f.Name)
			}
		case reflect.Slice:
			if f.Type.Elem().Kind() == reflect.Struct {
				out = append(out, f.Name)
			}
		}
	}
	return out
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gte":
		return fmt.Sprintf("ensure this value is greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "oneof":
		return fmt.Sprintf("%v is not a valid choice", fe.Value())
	case "email":
		return "enter a valid email address"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
