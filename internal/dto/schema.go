package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const DateLayout = "2006-01-02"

// NonFieldErrors is the key used for errors that concern the whole payload.
const NonFieldErrors = "non_field_errors"

type FieldKind int

const (
	KindString FieldKind = iota
	KindDate
)

// Field declares one wire field. Rules are validator tags applied to the
// decoded string value.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
	Trim     bool
	Rules    string
}

type Schema []Field

var validate = validator.New()

// ValidationError carries every field violation found in a payload.
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Validate checks a decoded JSON object against the schema. It returns the
// cleaned string value of every field present, or a *ValidationError listing
// all violations. With partial set, absent fields are not reported.
func (s Schema) Validate(payload map[string]json.RawMessage, partial bool) (map[string]string, error) {
	verr := &ValidationError{}
	values := make(map[string]string, len(s))

	for _, f := range s {
		raw, ok := payload[f.Name]
		if !ok {
			if f.Required && !partial {
				verr.add(f.Name, "This field is required.")
			}
			continue
		}
		if string(raw) == "null" {
			verr.add(f.Name, "This field may not be null.")
			continue
		}

		value, ok := decodeString(raw, f.Kind)
		if !ok {
			verr.add(f.Name, wrongTypeMessage(f.Kind))
			continue
		}
		if f.Trim {
			value = strings.TrimSpace(value)
		}

		if f.Rules != "" {
			if err := validate.Var(value, f.Rules); err != nil {
				var fieldErrs validator.ValidationErrors
				if errors.As(err, &fieldErrs) {
					for _, fe := range fieldErrs {
						verr.add(f.Name, ruleMessage(f.Kind, fe))
					}
					continue
				}
				return nil, err
			}
		}
		values[f.Name] = value
	}

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return values, nil
}

// decodeString accepts a JSON string. Text fields also take a JSON number,
// kept as written.
func decodeString(raw json.RawMessage, kind FieldKind) (string, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", false
	}
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		if kind == KindString {
			return v.String(), true
		}
	}
	return "", false
}

func wrongTypeMessage(kind FieldKind) string {
	if kind == KindDate {
		return dateFormatMessage
	}
	return "Not a valid string."
}

const dateFormatMessage = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."

func ruleMessage(kind FieldKind, fe validator.FieldError) string {
	if kind == KindDate {
		return dateFormatMessage
	}
	switch fe.Tag() {
	case "required":
		return "This field may not be blank."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule.", fe.Tag())
	}
}
