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

// Package binding assigns a custom role to principals in batches with
// per-principal failure isolation.
package binding

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abcxyz/pkg/logging"
	"github.com/sethvargo/go-retry"

	"github.com/platform-partners/roleadmin/apis/v1alpha1"
	"github.com/platform-partners/roleadmin/pkg/directory"
)

// Status of a single principal in an assignment batch.
type Status string

const (
	// StatusBound means a new binding was written for the principal.
	StatusBound Status = "BOUND"

	// StatusAlreadyBound means the principal was bound before the batch,
	// no write was issued.
	StatusAlreadyBound Status = "ALREADY_BOUND"

	// StatusFailed means binding the principal failed. The failure never
	// aborts the rest of the batch.
	StatusFailed Status = "FAILED"
)

// Outcome is the result for one principal.
type Outcome struct {
	Principal string `yaml:"principal"`
	Status    Status `yaml:"status"`
	Error     string `yaml:"error,omitempty"`
}

// Report enumerates the outcome of every distinct principal in a batch.
type Report struct {
	RoleID       string     `yaml:"role"`
	Outcomes     []*Outcome `yaml:"outcomes"`
	Bound        int        `yaml:"bound"`
	AlreadyBound int        `yaml:"already_bound"`
	Failed       int        `yaml:"failed"`
}

// HasFailures reports whether any principal in the batch failed.
func (r *Report) HasFailures() bool {
	return r.Failed > 0
}

// Manager assigns a custom role to principals.
type Manager struct {
	dir directory.Directory
	// Optional retry backoff strategy, default is 5 attempts with
	// fibonacci backoff that starts at 500ms.
	retry retry.Backoff
}

// Option is the option to set up a Manager.
type Option func(m *Manager) *Manager

// WithRetry provides retry strategy to the manager.
func WithRetry(b retry.Backoff) Option {
	return func(m *Manager) *Manager {
		m.retry = b
		return m
	}
}

// New creates a Manager on the given directory.
func New(dir directory.Directory, opts ...Option) *Manager {
	m := &Manager{dir: dir}
	for _, opt := range opts {
		m = opt(m)
	}
	if m.retry == nil {
		m.retry = retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))
	}
	return m
}

// Assign binds each distinct principal to the role and returns a report
// with exactly one outcome per principal. Batch-level failures (missing
// role, unreadable binding list) abort before any write; per-principal
// failures are captured in the report and never escalate.
func (m *Manager) Assign(ctx context.Context, roleID string, principals []string) (*Report, error) {
	if strings.TrimSpace(roleID) == "" {
		return nil, &directory.ValidationError{Message: "role id is required"}
	}

	if err := m.withRetry(ctx, func(ctx context.Context) error {
		_, err := m.dir.GetRole(ctx, roleID)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to look up role %q: %w", roleID, err)
	}

	bound, err := m.getBindings(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bindings for role %q: %w", roleID, err)
	}

	logger := logging.FromContext(ctx)

	report := &Report{RoleID: roleID}
	seen := make(map[string]struct{}, len(principals))
	for _, principal := range principals {
		member, err := v1alpha1.NormalizePrincipal(principal)
		if err != nil {
			// Malformed identifiers fail this principal only.
			key := strings.TrimSpace(principal)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			report.append(&Outcome{
				Principal: principal,
				Status:    StatusFailed,
				Error:     (&directory.ValidationError{Message: err.Error()}).Error(),
			})
			continue
		}
		if _, ok := seen[member]; ok {
			continue
		}
		seen[member] = struct{}{}

		if _, ok := bound[member]; ok {
			report.append(&Outcome{Principal: member, Status: StatusAlreadyBound})
			continue
		}

		if err := m.withRetry(ctx, func(ctx context.Context) error {
			return m.dir.AddBinding(ctx, roleID, member)
		}); err != nil {
			logger.Debugw("failed to bind principal",
				"role", roleID,
				"principal", member,
				"error", err)
			report.append(&Outcome{
				Principal: member,
				Status:    StatusFailed,
				Error:     err.Error(),
			})
			continue
		}
		report.append(&Outcome{Principal: member, Status: StatusBound})
	}
	return report, nil
}

// ListPrincipals returns the members currently bound to the role,
// sorted. The role must exist.
func (m *Manager) ListPrincipals(ctx context.Context, roleID string) ([]string, error) {
	if strings.TrimSpace(roleID) == "" {
		return nil, &directory.ValidationError{Message: "role id is required"}
	}

	if err := m.withRetry(ctx, func(ctx context.Context) error {
		_, err := m.dir.GetRole(ctx, roleID)
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to look up role %q: %w", roleID, err)
	}

	bound, err := m.getBindings(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bindings for role %q: %w", roleID, err)
	}

	members := make([]string, 0, len(bound))
	for member := range bound {
		members = append(members, member)
	}
	sort.Strings(members)
	return members, nil
}

func (m *Manager) getBindings(ctx context.Context, roleID string) (map[string]struct{}, error) {
	var bound map[string]struct{}
	if err := m.withRetry(ctx, func(ctx context.Context) error {
		var err error
		bound, err = m.dir.GetBindingsForRole(ctx, roleID)
		return err
	}); err != nil {
		return nil, err
	}
	return bound, nil
}

func (m *Manager) withRetry(ctx context.Context, f func(ctx context.Context) error) error {
	return retry.Do(ctx, m.retry, func(ctx context.Context) error {
		if err := f(ctx); err != nil {
			if directory.IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
}

func (r *Report) append(o *Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusBound:
		r.Bound++
	case StatusAlreadyBound:
		r.AlreadyBound++
	case StatusFailed:
		r.Failed++
	}
}
