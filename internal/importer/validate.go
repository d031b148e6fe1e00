package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ysads/cookbook/internal/cookbookdb"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report paths with the json field names the audit UI shows.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors validates v against its struct tags and maps every failure to
// a path-qualified, human-readable error. A nil result means v is valid.
func fieldErrors(v any) []cookbookdb.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []cookbookdb.FieldError{{Message: err.Error()}}
	}
	out := make([]cookbookdb.FieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = cookbookdb.FieldError{Path: fieldPath(fe), Message: fieldMessage(fe)}
	}
	return out
}

// fieldPath strips the root struct name from the namespace, leaving paths
// like "servings" or "ingredientSets[0].ingreds".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Namespace()
	}
	return path
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "min":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return fmt.Sprintf("must contain at least %s element(s)", fe.Param())
		default:
			return fmt.Sprintf("must be at least %s", fe.Param())
		}
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
