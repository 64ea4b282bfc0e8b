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

// Launch stages accepted for a custom role.
const (
	StageGA       = "GA"
	StageBeta     = "BETA"
	StageAlpha    = "ALPHA"
	StageDisabled = "DISABLED"
)

// RoleRequest declares the desired state of a project custom role. It is
// read from a YAML file and treated as a fixed target by the
// reconciliation core, never mutated.
type RoleRequest struct {
	// ID is the custom role identifier within the project, used as the
	// cloud resource key.
	ID string `yaml:"id" json:"id,omitempty"`

	// Title is the human readable role title.
	Title string `yaml:"title" json:"title,omitempty"`

	// Description of what the role is for.
	Description string `yaml:"description" json:"description,omitempty"`

	// Stage is the launch stage of the role, one of GA, BETA, ALPHA, or
	// DISABLED. Defaults to GA when empty.
	Stage string `yaml:"stage" json:"stage,omitempty"`

	// Permissions included in the role, as service.resource.verb strings.
	// Order carries no meaning and duplicates are ignored.
	Permissions []string `yaml:"permissions" json:"permissions,omitempty"`
}

// PermissionSet returns the desired permissions as a set.
func (r *RoleRequest) PermissionSet() PermissionSet {
	return NewPermissionSet(r.Permissions...)
}

// RoleState is a snapshot of a custom role as currently stored by the
// cloud directory. It is fetched fresh per call, never cached across
// invocations.
type RoleState struct {
	// Name is the full resource name, e.g.
	// "projects/my-project/roles/myRole".
	Name string `yaml:"name" json:"name,omitempty"`

	// ID is the role identifier within the project.
	ID string `yaml:"id" json:"id,omitempty"`

	Title       string `yaml:"title" json:"title,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	Stage       string `yaml:"stage" json:"stage,omitempty"`

	// Permissions currently granted by the role, sorted.
	Permissions []string `yaml:"permissions" json:"permissions,omitempty"`
}

// PermissionSet returns the stored permissions as a set.
func (s *RoleState) PermissionSet() PermissionSet {
	return NewPermissionSet(s.Permissions...)
}
