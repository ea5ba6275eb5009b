// Package validation checks request payloads before they reach the lifecycle
// services. Every function here is pure: the same input always produces the
// same verdict and nothing touches persistence.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	types "github.com/yungbote/experience-marketplace/internal/domain"
	pkgerrors "github.com/yungbote/experience-marketplace/internal/pkg/errors"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// ValidationError reports every failing field, keyed by its JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// InvalidIdentifierError is returned for path identifiers that are not canonical UUIDs.
type InvalidIdentifierError struct {
	Field string
	Value string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid %s format", e.Field)
}

func (e *InvalidIdentifierError) Is(target error) bool {
	return target == pkgerrors.ErrInvalidIdentifier
}

type MarketplaceCreateInput struct {
	Title    *string  `json:"title" validate:"required,min=1,max=100"`
	TakeRate *float64 `json:"takeRate" validate:"required,gte=0,lte=100"`
}

type MarketplaceUpdateInput struct {
	Title *string `json:"title" validate:"required,min=1,max=100"`
}

type MarketplaceStatusInput struct {
	Active *bool `json:"active" validate:"required"`
}

// PriceInCents is capped at the largest integer a JSON client can represent exactly.
type ItemCreateInput struct {
	Title        *string  `json:"title" validate:"required,min=1,max=200"`
	Description  *string  `json:"description" validate:"required,min=1,max=5000"`
	PriceInCents *float64 `json:"priceInCents" validate:"required,whole,gte=0,lte=9007199254740991"`
	PostedBy     *string  `json:"postedBy" validate:"required,min=1"`
}

type NewMarketplace struct {
	Title    string
	TakeRate float64
}

type NewItem struct {
	Title        string
	Description  string
	PriceInCents int64
	PostedBy     string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("whole", func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Float32, reflect.Float64:
			f := fl.Field().Float()
			return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return true
		default:
			return false
		}
	})
	return v
}

var fieldLabels = map[string]string{
	"title":        "Title",
	"takeRate":     "Take rate",
	"description":  "Description",
	"priceInCents": "Price",
	"postedBy":     "Poster ID",
	"active":       "Active",
}

func messageFor(fe validator.FieldError) string {
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	numeric := fe.Kind() == reflect.Float64 || fe.Kind() == reflect.Float32
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		if fe.Param() == "1" {
			return label + " is required"
		}
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return label + " is too long"
	case "gte":
		if fe.Field() == "priceInCents" {
			return "Price must be a positive number"
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "lte":
		if numeric {
			return fmt.Sprintf("%s cannot exceed %s", label, fe.Param())
		}
		return label + " is too long"
	case "whole":
		return label + " must be an integer"
	default:
		return label + " is invalid"
	}
}

func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, seen := out.Fields[fe.Field()]; !seen {
			out.Fields[fe.Field()] = messageFor(fe)
		}
	}
	return out
}

func MarketplaceCreate(in MarketplaceCreateInput) (NewMarketplace, error) {
	if err := check(in); err != nil {
		return NewMarketplace{}, err
	}
	return NewMarketplace{Title: *in.Title, TakeRate: *in.TakeRate}, nil
}

func MarketplaceUpdate(in MarketplaceUpdateInput) (string, error) {
	if err := check(in); err != nil {
		return "", err
	}
	return *in.Title, nil
}

func MarketplaceStatus(in MarketplaceStatusInput) (bool, error) {
	if err := check(in); err != nil {
		return false, err
	}
	return *in.Active, nil
}

func ItemCreate(in ItemCreateInput) (NewItem, error) {
	if err := check(in); err != nil {
		return NewItem{}, err
	}
	return NewItem{
		Title:        *in.Title,
		Description:  *in.Description,
		PriceInCents: int64(*in.PriceInCents),
		PostedBy:     *in.PostedBy,
	}, nil
}

// ParseID accepts only the canonical 8-4-4-4-12 hex form.
func ParseID(field, raw string) (uuid.UUID, error) {
	if len(raw) != 36 {
		return uuid.Nil, &InvalidIdentifierError{Field: field, Value: raw}
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &InvalidIdentifierError{Field: field, Value: raw}
	}
	return id, nil
}

// ExperienceID validates an opaque experience scope identifier.
func ExperienceID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", newValidationError("experienceId", "Missing experienceId")
	}
	return id, nil
}

// Page parses limit/skip query values. Missing values take the defaults,
// non-integers and out-of-range values are rejected, and limit is capped
// at MaxPageLimit.
func Page(limitRaw, skipRaw string) (types.Page, error) {
	page := types.Page{Limit: DefaultPageLimit, Skip: 0}
	fields := map[string]string{}
	if s := strings.TrimSpace(limitRaw); s != "" {
		n, err := strconv.Atoi(s)
		switch {
		case err != nil:
			fields["limit"] = "limit must be an integer"
		case n < 1:
			fields["limit"] = "limit must be at least 1"
		case n > MaxPageLimit:
			page.Limit = MaxPageLimit
		default:
			page.Limit = n
		}
	}
	if s := strings.TrimSpace(skipRaw); s != "" {
		n, err := strconv.Atoi(s)
		switch {
		case err != nil:
			fields["skip"] = "skip must be an integer"
		case n < 0:
			fields["skip"] = "skip cannot be negative"
		default:
			page.Skip = n
		}
	}
	if len(fields) > 0 {
		return types.Page{}, &ValidationError{Fields: fields}
	}
	return page, nil
}

// DecodeError turns a JSON body decoding failure into a ValidationError.
func DecodeError(err error) error {
	if err == nil {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return newValidationError(field, fmt.Sprintf("expected %s", describeKind(typeErr.Type)))
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return newValidationError("body", "malformed JSON")
	}
	if errors.Is(err, io.EOF) {
		return newValidationError("body", "request body is required")
	}
	return newValidationError("body", "invalid request body")
}

func describeKind(t reflect.Type) string {
	if t == nil {
		return "a different type"
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64, reflect.Int32:
		return "a number"
	default:
		return "a different type"
	}
}
