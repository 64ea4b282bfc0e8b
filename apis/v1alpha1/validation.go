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

package v1alpha1

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	// roleIDPattern matches valid custom role identifiers.
	roleIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,64}$`)

	// permissionPattern matches service.resource.verb permission strings.
	permissionPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-zA-Z0-9]+){2,}$`)

	validStages = map[string]struct{}{
		StageGA:       {},
		StageBeta:     {},
		StageAlpha:    {},
		StageDisabled: {},
	}
)

// ValidateRoleRequest checks if the RoleRequest is valid.
func ValidateRoleRequest(r *RoleRequest) (retErr error) {
	if r.ID == "" {
		retErr = errors.Join(retErr, fmt.Errorf("role id is required"))
	} else if !roleIDPattern.MatchString(r.ID) {
		retErr = errors.Join(retErr, fmt.Errorf("role id %q must match %q", r.ID, roleIDPattern.String()))
	}

	if r.Title == "" {
		retErr = errors.Join(retErr, fmt.Errorf("role title is required"))
	}

	if r.Stage != "" {
		if _, ok := validStages[r.Stage]; !ok {
			retErr = errors.Join(retErr, fmt.Errorf("stage %q isn't one of [GA, BETA, ALPHA, DISABLED]", r.Stage))
		}
	}

	for _, p := range r.Permissions {
		if !permissionPattern.MatchString(p) {
			retErr = errors.Join(retErr, fmt.Errorf(`permission %q is not a valid format (expected "service.resource.verb")`, p))
		}
	}
	return retErr
}

// NormalizePrincipal converts a principal identifier to the IAM member
// form "user:<email>". Bare email addresses are accepted and prefixed,
// an explicit prefix must be of "user" type.
func NormalizePrincipal(principal string) (string, error) {
	p := strings.TrimSpace(principal)
	if p == "" {
		return "", fmt.Errorf("principal is empty")
	}

	email := p
	if parts := strings.SplitN(p, ":", 2); len(parts) == 2 {
		// Check if prefix is "user".
		if got, want := parts[0], "user"; got != want {
			return "", fmt.Errorf(`principal %q is not of "user" type (got %q)`, p, got)
		}
		email = parts[1]
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("principal %q does not appear to be a valid email address (got %q)", p, email)
	}
	return "user:" + email, nil
}
