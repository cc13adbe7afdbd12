package web

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// reportParams are the query parameters of both report endpoints.
type reportParams struct {
	Course  int64  `json:"course" validate:"required,gt=0"`
	Format  string `json:"format" validate:"omitempty,oneof=csv excelcsv pdf xlsx json"`
	Sort    string `json:"sort" validate:"omitempty,oneof=firstname lastname"`
	Start   int    `json:"start" validate:"gte=0"`
	PerPage int    `json:"perpage" validate:"omitempty,min=1,max=5000"`
	SIFirst string `json:"sifirst" validate:"omitempty,len=1,alphaunicode"`
	SILast  string `json:"silast" validate:"omitempty,len=1,alphaunicode"`
}

// fieldError describes one rejected parameter.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// paramError is returned for malformed or invalid query parameters.
type paramError struct {
	Fields []fieldError
}

func (e *paramError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "invalid parameters: " + strings.Join(msgs, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report parameter names instead of Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// parseReportParams reads and validates the query. Numeric parameters that
// do not parse are reported the same way as failed validation.
func parseReportParams(v *validator.Validate, q url.Values) (reportParams, error) {
	var (
		p    reportParams
		errs []fieldError
	)

	intParam := func(name string, dst *int) {
		raw := strings.TrimSpace(q.Get(name))
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fieldError{Field: name, Message: fmt.Sprintf("%s must be a whole number", name)})
			return
		}
		*dst = n
	}

	if raw := strings.TrimSpace(q.Get("course")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errs = append(errs, fieldError{Field: "course", Message: "course must be a numeric id"})
		}
		p.Course = id
	}
	intParam("start", &p.Start)
	intParam("perpage", &p.PerPage)
	p.Format = q.Get("format")
	p.Sort = q.Get("sort")
	p.SIFirst = strings.ToUpper(q.Get("sifirst"))
	p.SILast = strings.ToUpper(q.Get("silast"))

	if len(errs) > 0 {
		return p, &paramError{Fields: errs}
	}

	if err := v.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return p, err
		}
		for _, fe := range verrs {
			errs = append(errs, fieldError{Field: fe.Field(), Message: formatFieldError(fe)})
		}
		return p, &paramError{Fields: errs}
	}
	return p, nil
}

func formatFieldError(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "len":
		return fmt.Sprintf("%s must be exactly %s character", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "alphaunicode":
		return fmt.Sprintf("%s must be a letter", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
