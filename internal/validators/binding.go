package validators

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Field errors carry the json names, not the Go field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonName)
	}
}

func jsonName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// FromBinding converts the failures of gin's `binding` tags into Errors.
// Anything else (malformed JSON, wrong types) reports false.
func FromBinding(err error) (Errors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}

	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out.Add(fe.Field(), tagMessage(fe))
	}
	return out, true
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "é obrigatório"
	case "email":
		return "deve ser um e-mail válido"
	case "number":
		return "deve conter apenas números"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve ter no mínimo %s caracteres", fe.Param())
		}
		return "deve ser no mínimo " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
		}
		return "deve ser no máximo " + fe.Param()
	}
	return "é inválido"
}

// checkTags runs the binding rules again, on the normalized request.
func checkTags(req any) Errors {
	err := binding.Validator.ValidateStruct(req)
	if err == nil {
		return nil
	}
	if errs, ok := FromBinding(err); ok {
		return errs
	}
	return Errors{{Message: err.Error()}}
}
