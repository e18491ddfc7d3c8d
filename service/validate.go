package service

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/to404hanga/online_judge_arena/errs"
)

var validate = validator.New()

// validateStruct 校验 validate 标签, 失败时返回可直接展示的 ValidationError
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	return errs.NewValidationError(errs.CodeInvalidParam, formatValidationErrors(err))
}

func formatValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		switch e.Tag() {
		case "required":
			msgs = append(msgs, e.Field()+" is required")
		case "email":
			msgs = append(msgs, e.Field()+" must be a valid email")
		case "alphanum":
			msgs = append(msgs, e.Field()+" must be alphanumeric")
		case "min":
			msgs = append(msgs, e.Field()+" must be at least "+e.Param()+" characters")
		case "max":
			msgs = append(msgs, e.Field()+" must be at most "+e.Param()+" characters")
		case "oneof":
			msgs = append(msgs, e.Field()+" must be one of: "+e.Param())
		default:
			msgs = append(msgs, e.Field()+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
