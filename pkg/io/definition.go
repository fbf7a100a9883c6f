package io

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/nestedheaders/pkg/errors"
	"github.com/matzehuels/nestedheaders/pkg/headers"
)

// Definition is a header source document plus its view state.
type Definition struct {
	Columns   int                `json:"columns,omitempty" toml:"columns,omitempty" yaml:"columns,omitempty" validate:"gte=0,lte=4096"`
	Rows      [][]headers.Header `json:"rows" toml:"rows" yaml:"rows" validate:"max=64,dive,dive"`
	Hidden    []int              `json:"hidden,omitempty" toml:"hidden,omitempty" yaml:"hidden,omitempty" validate:"dive,gte=0"`
	Collapsed []headers.Position `json:"collapsed,omitempty" toml:"collapsed,omitempty" yaml:"collapsed,omitempty" validate:"dive"`
}

// Forest builds the header forest of d without applying hidden or collapsed state.
func (d Definition) Forest() (headers.Forest, error) {
	return headers.Build(d.Rows, d.Columns)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the struct constraints of d. Structural problems of the
// header rows themselves are reported by [headers.Build].
func (d Definition) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid definition")
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = formatFieldError(fe)
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid definition: %s", strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Definition.")
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at most %s entries", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
