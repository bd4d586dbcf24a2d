package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"tagreview/internal/records"
	"tagreview/internal/reviewerr"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("col"); name != "" {
			return name
		}
		return field.Name
	})
	if err := validate.RegisterValidation("notblank", validateNotBlank); err != nil {
		panic(fmt.Sprintf("failed to register notblank validator: %v", err))
	}
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// rowInput carries the fields checked before a row becomes a record.
type rowInput struct {
	Source       string   `col:"source" validate:"notblank"`
	Issue        string   `col:"Issue" validate:"notblank"`
	ProposedTags []string `col:"IssueTag1..8" validate:"max=8"`
}

// check returns one RowError per failing field, in struct order.
func (in rowInput) check(row int) []*reviewerr.RowError {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []*reviewerr.RowError{{Row: row, Reason: err.Error()}}
	}
	out := make([]*reviewerr.RowError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, &reviewerr.RowError{Row: row, Field: fe.Field(), Reason: reason(fe)})
	}
	return out
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "notblank":
		return "required value is empty"
	case "max":
		return fmt.Sprintf("more than %d proposed tags", records.MaxProposedTags)
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
