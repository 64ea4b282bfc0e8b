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

// testutil package provides utilities that are intended to enable easier
// and more concise writing of unit test code.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/platform-partners/roleadmin/apis/v1alpha1"
	"github.com/platform-partners/roleadmin/pkg/directory"
)

// FakeDirectory is an in-memory Directory for unit tests. Errors can be
// injected per operation, writes are counted so tests can assert
// idempotence and dry-run purity.
type FakeDirectory struct {
	mu sync.Mutex

	// Role is the stored role, nil means absent.
	Role *v1alpha1.RoleState

	// Bindings holds the members bound to the role.
	Bindings map[string]struct{}

	GetRoleErr      error
	CreateRoleErr   error
	ReplacePermsErr error
	GetBindingsErr  error

	// AddBindingErrs injects a failure for specific members.
	AddBindingErrs map[string]error

	CreateCalls  int
	ReplaceCalls int
	AddCalls     int
}

// WriteCount returns the total number of mutating calls observed.
func (d *FakeDirectory) WriteCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.CreateCalls + d.ReplaceCalls + d.AddCalls
}

func (d *FakeDirectory) GetRole(_ context.Context, roleID string) (*v1alpha1.RoleState, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.GetRoleErr != nil {
		return nil, d.GetRoleErr
	}
	if d.Role == nil || d.Role.ID != roleID {
		return nil, &directory.NotFoundError{Resource: fmt.Sprintf("role %q", roleID)}
	}
	state := *d.Role
	state.Permissions = append([]string{}, d.Role.Permissions...)
	return &state, nil
}

func (d *FakeDirectory) CreateRole(_ context.Context, role *v1alpha1.RoleRequest) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.CreateCalls++
	if d.CreateRoleErr != nil {
		return d.CreateRoleErr
	}
	if d.Role != nil && d.Role.ID == role.ID {
		return &directory.AlreadyExistsError{Resource: fmt.Sprintf("role %q", role.ID)}
	}

	stage := role.Stage
	if stage == "" {
		stage = v1alpha1.StageGA
	}
	d.Role = &v1alpha1.RoleState{
		Name:        "projects/test/roles/" + role.ID,
		ID:          role.ID,
		Title:       role.Title,
		Description: role.Description,
		Stage:       stage,
		Permissions: role.PermissionSet().Sorted(),
	}
	return nil
}

func (d *FakeDirectory) ReplaceRolePermissions(_ context.Context, roleID string, permissions v1alpha1.PermissionSet) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ReplaceCalls++
	if d.ReplacePermsErr != nil {
		return d.ReplacePermsErr
	}
	if d.Role == nil || d.Role.ID != roleID {
		return &directory.NotFoundError{Resource: fmt.Sprintf("role %q", roleID)}
	}
	d.Role.Permissions = permissions.Sorted()
	return nil
}

func (d *FakeDirectory) GetBindingsForRole(_ context.Context, roleID string) (map[string]struct{}, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.GetBindingsErr != nil {
		return nil, d.GetBindingsErr
	}
	members := make(map[string]struct{}, len(d.Bindings))
	for m := range d.Bindings {
		members[m] = struct{}{}
	}
	return members, nil
}

func (d *FakeDirectory) AddBinding(_ context.Context, roleID, member string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.AddCalls++
	if err := d.AddBindingErrs[member]; err != nil {
		return err
	}
	if d.Bindings == nil {
		d.Bindings = make(map[string]struct{})
	}
	d.Bindings[member] = struct{}{}
	return nil
}
