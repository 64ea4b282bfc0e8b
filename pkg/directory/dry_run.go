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

	"github.com/platform-partners/roleadmin/apis/v1alpha1"
)

// DryRun wraps a Directory and suppresses every write. Reads pass
// through, so plans are still computed against real remote state.
type DryRun struct {
	Directory
}

// NewDryRun wraps the given directory.
func NewDryRun(d Directory) *DryRun {
	return &DryRun{Directory: d}
}

// CreateRole performs no write.
func (d *DryRun) CreateRole(_ context.Context, _ *v1alpha1.RoleRequest) error {
	return nil
}

// ReplaceRolePermissions performs no write.
func (d *DryRun) ReplaceRolePermissions(_ context.Context, _ string, _ v1alpha1.PermissionSet) error {
	return nil
}

// AddBinding performs no write.
func (d *DryRun) AddBinding(_ context.Context, _, _ string) error {
	return nil
}
