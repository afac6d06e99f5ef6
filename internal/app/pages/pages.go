// Package pages holds the load and action logic behind each console page.
// Every page talks to the HR API through a Caller, so the same code serves
// the web console and hrdeskctl.
package pages

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/astro-web3/hrdesk-console/internal/domain/hr"
	"github.com/astro-web3/hrdesk-console/internal/infra/api"
)

// Caller is the gateway surface pages need.
type Caller = api.Caller

// Clock returns the current time; tests pin it.
type Clock func() time.Time

// Placeholder shown for an unresolved reference.
const Placeholder = "-"

var ErrNotAllowed = errors.New("not allowed for the current role")

// ValidationError is a form problem caught before any API call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates payload and reports the first failing field.
func check(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("failed to validate form: %w", err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalid("%s is required", fe.Field())
	case "email":
		return invalid("%s must be a valid email address", fe.Field())
	case "datetime":
		return invalid("%s must be a date (YYYY-MM-DD)", fe.Field())
	case "oneof":
		return invalid("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return invalid("%s is invalid", fe.Field())
	}
}

// loadAll runs loads concurrently. The first failure cancels the rest and is
// the only error returned. Callers build their view only on a nil result, so
// a failed load never leaves partial state behind. A load that completes
// after ctx was canceled reports ctx.Err() and is discarded too.
func loadAll(ctx context.Context, loads ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, load := range loads {
		g.Go(func() error {
			return load(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func get[T any](c Caller, path string, out *T) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return c.Call(ctx, http.MethodGet, path, nil, out)
	}
}

func departmentNames(departments []hr.Department) map[int]string {
	names := make(map[int]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return names
}

func positionNames(positions []hr.Position) map[int]string {
	names := make(map[int]string, len(positions))
	for _, p := range positions {
		names[p.ID] = p.Name
	}
	return names
}

func nameOf(names map[int]string, id *int) string {
	if id == nil {
		return Placeholder
	}
	if name, ok := names[*id]; ok && name != "" {
		return name
	}
	return Placeholder
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orPlaceholder(s *string) string {
	if v := deref(s); v != "" {
		return v
	}
	return Placeholder
}

// optionalString maps an empty form value to nil.
func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// optionalID parses a form select value; empty means unset.
func optionalID(field, v string) (*int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.Atoi(v)
	if err != nil || id <= 0 {
		return nil, invalid("%s must be a valid id", field)
	}
	return &id, nil
}

func sameID(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
