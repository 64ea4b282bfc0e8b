// Copyright 2024 The Authors (see AUTHORS file)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package directory

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NotFoundError indicates the named entity does not exist in the
// directory. The caller must create it first.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s was not found", e.Resource)
}

// AlreadyExistsError indicates a create hit an existing entity. The
// caller is expected to retry with an update.
type AlreadyExistsError struct {
	Resource string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Resource)
}

// PermissionDeniedError indicates the caller's own credentials lack
// rights on the named entity. Not retryable.
type PermissionDeniedError struct {
	Resource string
	Err      error
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied on %s: %v", e.Resource, e.Err)
}

func (e *PermissionDeniedError) Unwrap() error { return e.Err }

// TransientError indicates a timeout or network failure. The whole
// action is safe to retry, every directory operation is idempotent.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient directory error: %v", e.Err)
}

func (e *TransientError) Unwrap() error { return e.Err }

// ValidationError indicates malformed input. Not retryable, the caller
// must fix the input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// IsTransient reports whether err is a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// translateError maps a transport error to the package taxonomy. The
// resource string names the entity the failure applies to.
func translateError(resource string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &TransientError{Err: err}
	}

	if s, ok := status.FromError(err); ok {
		switch s.Code() {
		case codes.NotFound:
			return &NotFoundError{Resource: resource}
		case codes.AlreadyExists:
			return &AlreadyExistsError{Resource: resource}
		case codes.PermissionDenied:
			return &PermissionDeniedError{Resource: resource, Err: err}
		case codes.InvalidArgument, codes.FailedPrecondition:
			return &ValidationError{Message: fmt.Sprintf("%s: %s", resource, s.Message())}
		}
	}

	// Everything else (unavailable, deadline exceeded, aborted, plain
	// network failures) is safe to retry.
	return &TransientError{Err: err}
}
