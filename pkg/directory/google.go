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
	"fmt"
	"sort"

	"cloud.google.com/go/iam/admin/apiv1/adminpb"
	"cloud.google.com/go/iam/apiv1/iampb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/protobuf/types/known/fieldmaskpb"

	"github.com/platform-partners/roleadmin/apis/v1alpha1"
)

// RolesClient is the subset of the IAM admin client used to manage
// project custom roles.
type RolesClient interface {
	GetRole(context.Context, *adminpb.GetRoleRequest, ...gax.CallOption) (*adminpb.Role, error)
	CreateRole(context.Context, *adminpb.CreateRoleRequest, ...gax.CallOption) (*adminpb.Role, error)
	UpdateRole(context.Context, *adminpb.UpdateRoleRequest, ...gax.CallOption) (*adminpb.Role, error)
}

// ProjectsClient is the subset of the resource manager client used to
// manage project access bindings.
type ProjectsClient interface {
	GetIamPolicy(context.Context, *iampb.GetIamPolicyRequest, ...gax.CallOption) (*iampb.Policy, error)
	SetIamPolicy(context.Context, *iampb.SetIamPolicyRequest, ...gax.CallOption) (*iampb.Policy, error)
}

// Google is the Directory implementation backed by the GCP IAM admin and
// resource manager APIs, bound to a single project.
type Google struct {
	project  string
	roles    RolesClient
	projects ProjectsClient
}

// NewGoogle creates a Google directory for the given project with the
// provided clients.
func NewGoogle(project string, roles RolesClient, projects ProjectsClient) *Google {
	return &Google{
		project:  project,
		roles:    roles,
		projects: projects,
	}
}

func (g *Google) roleName(roleID string) string {
	return fmt.Sprintf("projects/%s/roles/%s", g.project, roleID)
}

func (g *Google) projectResource() string {
	return "projects/" + g.project
}

// GetRole fetches a fresh snapshot of the custom role.
func (g *Google) GetRole(ctx context.Context, roleID string) (*v1alpha1.RoleState, error) {
	role, err := g.roles.GetRole(ctx, &adminpb.GetRoleRequest{
		Name: g.roleName(roleID),
	})
	if err != nil {
		return nil, translateError(fmt.Sprintf("role %q", roleID), err)
	}
	return roleState(roleID, role), nil
}

// CreateRole creates the custom role exactly as declared.
func (g *Google) CreateRole(ctx context.Context, role *v1alpha1.RoleRequest) error {
	req := &adminpb.CreateRoleRequest{
		Parent: g.projectResource(),
		RoleId: role.ID,
		Role: &adminpb.Role{
			Title:               role.Title,
			Description:         role.Description,
			Stage:               launchStage(role.Stage),
			IncludedPermissions: role.PermissionSet().Sorted(),
		},
	}
	if _, err := g.roles.CreateRole(ctx, req); err != nil {
		return translateError(fmt.Sprintf("role %q", role.ID), err)
	}
	return nil
}

// ReplaceRolePermissions overwrites the role's permission list with
// exactly the given set, total replacement rather than append.
func (g *Google) ReplaceRolePermissions(ctx context.Context, roleID string, permissions v1alpha1.PermissionSet) error {
	name := g.roleName(roleID)
	req := &adminpb.UpdateRoleRequest{
		Name: name,
		Role: &adminpb.Role{
			Name:                name,
			IncludedPermissions: permissions.Sorted(),
		},
		UpdateMask: &fieldmaskpb.FieldMask{Paths: []string{"included_permissions"}},
	}
	if _, err := g.roles.UpdateRole(ctx, req); err != nil {
		return translateError(fmt.Sprintf("role %q", roleID), err)
	}
	return nil
}

// GetBindingsForRole returns the set of members bound to the role on the
// project policy. Conditioned bindings are owned by other tooling and
// are not considered.
func (g *Google) GetBindingsForRole(ctx context.Context, roleID string) (map[string]struct{}, error) {
	policy, err := g.projects.GetIamPolicy(ctx, &iampb.GetIamPolicyRequest{
		Resource: g.projectResource(),
	})
	if err != nil {
		return nil, translateError(fmt.Sprintf("project %q", g.project), err)
	}

	name := g.roleName(roleID)
	members := make(map[string]struct{})
	for _, b := range policy.GetBindings() {
		if b.GetRole() != name || b.GetCondition() != nil {
			continue
		}
		for _, m := range b.GetMembers() {
			members[m] = struct{}{}
		}
	}
	return members, nil
}

// AddBinding adds the member to the role's unconditioned binding on the
// project policy via read-modify-write.
func (g *Google) AddBinding(ctx context.Context, roleID, member string) error {
	policy, err := g.projects.GetIamPolicy(ctx, &iampb.GetIamPolicyRequest{
		Resource: g.projectResource(),
	})
	if err != nil {
		return translateError(fmt.Sprintf("project %q", g.project), err)
	}

	name := g.roleName(roleID)
	var binding *iampb.Binding
	for _, b := range policy.GetBindings() {
		if b.GetRole() == name && b.GetCondition() == nil {
			binding = b
			break
		}
	}
	if binding == nil {
		binding = &iampb.Binding{Role: name}
		policy.Bindings = append(policy.Bindings, binding)
	}
	for _, m := range binding.GetMembers() {
		if m == member {
			return nil
		}
	}
	binding.Members = append(binding.Members, member)

	if _, err := g.projects.SetIamPolicy(ctx, &iampb.SetIamPolicyRequest{
		Resource: g.projectResource(),
		Policy:   policy,
	}); err != nil {
		return translateError(fmt.Sprintf("binding %q on role %q", member, roleID), err)
	}
	return nil
}

func roleState(roleID string, role *adminpb.Role) *v1alpha1.RoleState {
	permissions := append([]string{}, role.GetIncludedPermissions()...)
	sort.Strings(permissions)
	return &v1alpha1.RoleState{
		Name:        role.GetName(),
		ID:          roleID,
		Title:       role.GetTitle(),
		Description: role.GetDescription(),
		Stage:       role.GetStage().String(),
		Permissions: permissions,
	}
}

func launchStage(stage string) adminpb.Role_RoleLaunchStage {
	switch stage {
	case v1alpha1.StageBeta:
		return adminpb.Role_BETA
	case v1alpha1.StageAlpha:
		return adminpb.Role_ALPHA
	case v1alpha1.StageDisabled:
		return adminpb.Role_DISABLED
	default:
		// Validation restricts the stage to the known values, an empty
		// stage means GA.
		return adminpb.Role_GA
	}
}
