// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"angler.dev/angler/duration"
)

var (
	// ErrAttemptsAboveLimit is reported by [RetryPolicyWithinLimits] when the
	// default attempts exceed the limit.
	ErrAttemptsAboveLimit = errors.New("default max attempts above limit")

	// ErrIntervalAboveLimit is reported by [RetryPolicyWithinLimits] when a
	// default interval step exceeds the limit.
	ErrIntervalAboveLimit = errors.New("default interval above limit")

	// ErrConstraint is reported when a field holds a value that Build would
	// never produce, such as zero workers or a duplicated protocol.
	ErrConstraint = errors.New("value violates constraint")
)

const (
	tagAttemptsLimit = "attempts_limit"
	tagIntervalLimit = "interval_limit"
)

// newValidator reports field errors under the property key of the field,
// taken from its prop tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if key := fld.Tag.Get("prop"); key != "" {
			return key
		}
		return fld.Name
	})
	return v
}

var (
	settingsValidator = sync.OnceValue(newValidator)

	limitsValidator = sync.OnceValue(func() *validator.Validate {
		v := newValidator()
		v.RegisterStructValidation(validateRetryPolicy, RetryPolicySettings{})
		return v
	})
)

// validateRetryPolicy checks the defaults against the limits when both are set.
func validateRetryPolicy(sl validator.StructLevel) {
	rp := sl.Current().Interface().(RetryPolicySettings)

	if rp.DefaultMaxAttempts != nil && rp.MaxAttemptsLimit != nil && *rp.DefaultMaxAttempts > *rp.MaxAttemptsLimit {
		sl.ReportError(*rp.DefaultMaxAttempts, KeyRetryDefaultMaxAttempts, "DefaultMaxAttempts",
			tagAttemptsLimit, fmt.Sprint(*rp.MaxAttemptsLimit))
	}

	if rp.DefaultInterval != nil && rp.DefaultInterval.Len() > 0 && rp.MaxIntervalLimit != nil &&
		rp.DefaultInterval.Max() > *rp.MaxIntervalLimit {
		sl.ReportError(rp.DefaultInterval.Max(), KeyRetryDefaultInterval, "DefaultInterval",
			tagIntervalLimit, duration.Format(*rp.MaxIntervalLimit))
	}
}

// Validate checks the field constraints of a Settings that may have been
// assembled by hand rather than by Build: positive workers, ports and attempt
// limits, non-negative durations and a protocol set of unique non-empty names.
// Unset fields are not checked, so a partially filled Settings validates.
// Fields are checked one by one; relations between them are left to
// validators such as [RetryPolicyWithinLimits].
//
// Errors:
//   - Returns one [Error] per violated field, with Field set to its property
//     key and wrapping ErrConstraint
func (s *Settings) Validate() error {
	if s == nil {
		return nil
	}
	return validateWith(settingsValidator(), s)
}

// RetryPolicyWithinLimits is a validator for [WithValidator] that keeps the
// retry defaults inside the retry limits. Each relation is checked only when
// both of its fields are set.
//
// Errors:
//   - Returns ErrAttemptsAboveLimit if DefaultMaxAttempts > MaxAttemptsLimit
//   - Returns ErrIntervalAboveLimit if a DefaultInterval step > MaxIntervalLimit
func RetryPolicyWithinLimits(s *Settings) error {
	if s == nil {
		return nil
	}
	return validateWith(limitsValidator(), s.RetryPolicy)
}

func validateWith(v *validator.Validate, target any) error {
	err := v.Struct(target)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, NewFieldError("settings", fe.Field(), "validate", fieldError(fe)))
	}
	return errors.Join(errs...)
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case tagAttemptsLimit:
		return fmt.Errorf("%w: %v > %s=%s", ErrAttemptsAboveLimit,
			fe.Value(), KeyRetryMaxAttemptsLimit, fe.Param())
	case tagIntervalLimit:
		step, _ := fe.Value().(time.Duration)
		return fmt.Errorf("%w: step %s > %s=%s", ErrIntervalAboveLimit,
			duration.Format(step), KeyRetryMaxIntervalLimit, fe.Param())
	default:
		return fmt.Errorf("%w: want %s", ErrConstraint, constraint(fe))
	}
}

func constraint(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "> " + fe.Param()
	case "gte":
		return ">= " + fe.Param()
	case "unique":
		return "unique names"
	case "required":
		return "non-empty names"
	case "excludesall":
		return "names without ','"
	default:
		return fe.Tag()
	}
}
