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

// Package reconciler computes and applies the difference between a
// declared custom role and the role stored in the cloud directory.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abcxyz/pkg/logging"
	"github.com/sethvargo/go-retry"

	"github.com/platform-partners/roleadmin/apis/v1alpha1"
	"github.com/platform-partners/roleadmin/pkg/directory"
)

// Action selects the role lifecycle operation to perform.
type Action string

const (
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDescribe Action = "describe"
)

// Result summarizes one reconciliation pass.
type Result struct {
	// RoleID of the reconciled role.
	RoleID string `yaml:"role"`

	// Action that was performed.
	Action Action `yaml:"action"`

	// Changed reports whether the pass wrote (or, under dry run, would
	// have written) anything.
	Changed bool `yaml:"changed"`

	// Added and Removed list the permission diff applied by create or
	// update, sorted.
	Added   []string `yaml:"added,omitempty"`
	Removed []string `yaml:"removed,omitempty"`

	// State is the role state after the pass. It is computed from the
	// plan, not re-fetched, so dry runs report the same state a live
	// run would.
	State *v1alpha1.RoleState `yaml:"state,omitempty"`
}

// Reconciler applies a declared role to the cloud directory.
type Reconciler struct {
	dir directory.Directory
	// Optional retry backoff strategy, default is 5 attempts with
	// fibonacci backoff that starts at 500ms.
	retry retry.Backoff
}

// Option is the option to set up a Reconciler.
type Option func(r *Reconciler) *Reconciler

// WithRetry provides retry strategy to the reconciler.
func WithRetry(b retry.Backoff) Option {
	return func(r *Reconciler) *Reconciler {
		r.retry = b
		return r
	}
}

// New creates a Reconciler on the given directory.
func New(dir directory.Directory, opts ...Option) *Reconciler {
	r := &Reconciler{dir: dir}
	for _, opt := range opts {
		r = opt(r)
	}
	if r.retry == nil {
		r.retry = retry.WithMaxRetries(5, retry.NewFibonacci(500*time.Millisecond))
	}
	return r
}

// Reconcile fetches the current role state and performs the requested
// action against it. The declared request is never mutated.
func (r *Reconciler) Reconcile(ctx context.Context, req *v1alpha1.RoleRequest, action Action) (*Result, error) {
	if req.ID == "" {
		return nil, &directory.ValidationError{Message: "role id is required"}
	}

	switch action {
	case ActionCreate:
		return r.create(ctx, req)
	case ActionUpdate:
		return r.update(ctx, req)
	case ActionDescribe:
		return r.describe(ctx, req)
	default:
		return nil, fmt.Errorf("unknown action %q", action)
	}
}

func (r *Reconciler) create(ctx context.Context, req *v1alpha1.RoleRequest) (*Result, error) {
	_, err := r.getRole(ctx, req.ID)
	if err == nil {
		return nil, &directory.AlreadyExistsError{Resource: fmt.Sprintf("role %q", req.ID)}
	}
	if !directory.IsNotFound(err) {
		return nil, fmt.Errorf("failed to fetch role %q: %w", req.ID, err)
	}

	if err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.dir.CreateRole(ctx, req)
	}); err != nil {
		return nil, fmt.Errorf("failed to create role %q: %w", req.ID, err)
	}

	desired := req.PermissionSet()
	return &Result{
		RoleID:  req.ID,
		Action:  ActionCreate,
		Changed: true,
		Added:   desired.Sorted(),
		State:   stateFromRequest(req),
	}, nil
}

func (r *Reconciler) update(ctx context.Context, req *v1alpha1.RoleRequest) (*Result, error) {
	remote, err := r.getRole(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role %q: %w", req.ID, err)
	}

	desired := req.PermissionSet()
	added, removed := plan(desired, remote.PermissionSet())

	logger := logging.FromContext(ctx)
	logger.Debugw("computed permission diff",
		"role", req.ID,
		"added", len(added),
		"removed", len(removed))

	if len(added) == 0 && len(removed) == 0 {
		return &Result{
			RoleID:  req.ID,
			Action:  ActionUpdate,
			Changed: false,
			State:   remote,
		}, nil
	}

	// Total replacement rather than incremental patch, so permissions
	// removed from the declaration are revoked on the remote role.
	if err := r.withRetry(ctx, func(ctx context.Context) error {
		return r.dir.ReplaceRolePermissions(ctx, req.ID, desired)
	}); err != nil {
		return nil, fmt.Errorf("failed to update role %q: %w", req.ID, err)
	}

	merged := *remote
	merged.Permissions = desired.Sorted()
	return &Result{
		RoleID:  req.ID,
		Action:  ActionUpdate,
		Changed: true,
		Added:   added.Sorted(),
		Removed: removed.Sorted(),
		State:   &merged,
	}, nil
}

func (r *Reconciler) describe(ctx context.Context, req *v1alpha1.RoleRequest) (*Result, error) {
	remote, err := r.getRole(ctx, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch role %q: %w", req.ID, err)
	}
	return &Result{
		RoleID: req.ID,
		Action: ActionDescribe,
		State:  remote,
	}, nil
}

func (r *Reconciler) getRole(ctx context.Context, roleID string) (*v1alpha1.RoleState, error) {
	var state *v1alpha1.RoleState
	if err := r.withRetry(ctx, func(ctx context.Context) error {
		var err error
		state, err = r.dir.GetRole(ctx, roleID)
		return err
	}); err != nil {
		return nil, err
	}
	return state, nil
}

// withRetry runs f, retrying transient directory failures.
func (r *Reconciler) withRetry(ctx context.Context, f func(ctx context.Context) error) error {
	err := retry.Do(ctx, r.retry, func(ctx context.Context) error {
		if err := f(ctx); err != nil {
			if directory.IsTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err != nil {
		// Unwrap the retry marker so callers match on the taxonomy.
		var te *directory.TransientError
		if errors.As(err, &te) {
			return te
		}
		return err
	}
	return nil
}

// plan computes the permission diff between the declared and the stored
// set. It is a pure function with no side effects, the write step is
// fully separable from it.
func plan(desired, remote v1alpha1.PermissionSet) (added, removed v1alpha1.PermissionSet) {
	return desired.Difference(remote), remote.Difference(desired)
}

func stateFromRequest(req *v1alpha1.RoleRequest) *v1alpha1.RoleState {
	stage := req.Stage
	if stage == "" {
		stage = v1alpha1.StageGA
	}
	return &v1alpha1.RoleState{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Stage:       stage,
		Permissions: req.PermissionSet().Sorted(),
	}
}
