package models

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// fieldErrors collects every validation problem of one record.
type fieldErrors struct {
	err *multierror.Error
}

func (f *fieldErrors) add(field, format string, args ...interface{}) {
	f.err = multierror.Append(f.err, fmt.Errorf("%s: "+format, append([]interface{}{field}, args...)...))
}

func (f *fieldErrors) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		f.add(field, "is required")
	}
}

func (f *fieldErrors) email(field, value string) {
	if value == "" {
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		f.add(field, "is not a valid email address")
	}
}

func (f *fieldErrors) maxLen(field, value string, n int) {
	if len(value) > n {
		f.add(field, "must be at most %d characters", n)
	}
}

// result returns nil or an error wrapping ErrInvalidInput that lists every problem.
func (f *fieldErrors) result() error {
	if f.err == nil {
		return nil
	}
	f.err.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return strings.Join(msgs, "; ")
	}
	return &ValidationError{errs: f.err}
}

// ValidationError lists every field problem of a rejected record.
type ValidationError struct {
	errs *multierror.Error
}

func (e *ValidationError) Error() string {
	return e.errs.Error()
}

// Problems returns one message per invalid field.
func (e *ValidationError) Problems() []string {
	out := make([]string, len(e.errs.Errors))
	for i, err := range e.errs.Errors {
		out[i] = err.Error()
	}
	return out
}

// Is makes errors.Is(err, ErrInvalidInput) hold for every validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
