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

// Package directory provides read and write access to the cloud IAM role
// registry and the project's access binding list. The cloud directory is
// the single source of truth, nothing is cached across calls.
package directory

import (
	"context"

	"github.com/platform-partners/roleadmin/apis/v1alpha1"
)

// Directory is the boundary to the cloud IAM directory. Every call is a
// network operation that may fail; implementations translate transport
// failures into the error types of this package and never leak transport
// errors.
type Directory interface {
	// GetRole returns a snapshot of the role, or a NotFoundError if the
	// role does not exist.
	GetRole(ctx context.Context, roleID string) (*v1alpha1.RoleState, error)

	// CreateRole creates the role exactly as declared.
	CreateRole(ctx context.Context, role *v1alpha1.RoleRequest) error

	// ReplaceRolePermissions replaces the role's permission list with
	// exactly the given set.
	ReplaceRolePermissions(ctx context.Context, roleID string, permissions v1alpha1.PermissionSet) error

	// GetBindingsForRole returns the members currently bound to the role.
	GetBindingsForRole(ctx context.Context, roleID string) (map[string]struct{}, error)

	// AddBinding binds the member to the role. Adding a member that is
	// already bound is a no-op.
	AddBinding(ctx context.Context, roleID, member string) error
}
