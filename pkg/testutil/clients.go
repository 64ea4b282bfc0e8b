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

package testutil

import (
	"context"
	"testing"

	"cloud.google.com/go/iam/admin/apiv1/adminpb"
	"cloud.google.com/go/iam/apiv1/iampb"
	"cloud.google.com/go/resourcemanager/apiv3/resourcemanagerpb"
	"github.com/abcxyz/pkg/testutil"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	admin "cloud.google.com/go/iam/admin/apiv1"
	resourcemanager "cloud.google.com/go/resourcemanager/apiv3"
)

// FakeRolesServer backs the IAM admin client in tests. It stores at most
// one custom role.
type FakeRolesServer struct {
	adminpb.UnimplementedIAMServer

	Role          *adminpb.Role
	GetRoleErr    error
	CreateRoleErr error
	UpdateRoleErr error
}

func (s *FakeRolesServer) GetRole(_ context.Context, req *adminpb.GetRoleRequest) (*adminpb.Role, error) {
	if s.GetRoleErr != nil {
		return nil, s.GetRoleErr
	}
	if s.Role == nil || s.Role.GetName() != req.GetName() {
		return nil, status.Errorf(codes.NotFound, "role %q not found", req.GetName())
	}
	return s.Role, nil
}

func (s *FakeRolesServer) CreateRole(_ context.Context, req *adminpb.CreateRoleRequest) (*adminpb.Role, error) {
	if s.CreateRoleErr != nil {
		return nil, s.CreateRoleErr
	}
	name := req.GetParent() + "/roles/" + req.GetRoleId()
	if s.Role != nil && s.Role.GetName() == name {
		return nil, status.Errorf(codes.AlreadyExists, "role %q already exists", name)
	}
	role := req.GetRole()
	role.Name = name
	s.Role = role
	return role, nil
}

func (s *FakeRolesServer) UpdateRole(_ context.Context, req *adminpb.UpdateRoleRequest) (*adminpb.Role, error) {
	if s.UpdateRoleErr != nil {
		return nil, s.UpdateRoleErr
	}
	if s.Role == nil || s.Role.GetName() != req.GetName() {
		return nil, status.Errorf(codes.NotFound, "role %q not found", req.GetName())
	}
	// The directory only ever masks included_permissions.
	s.Role.IncludedPermissions = req.GetRole().GetIncludedPermissions()
	return s.Role, nil
}

// FakeProjectsServer backs the resource manager client in tests.
type FakeProjectsServer struct {
	resourcemanagerpb.UnimplementedProjectsServer

	Policy          *iampb.Policy
	GetIAMPolicyErr error
	SetIAMPolicyErr error
}

func (s *FakeProjectsServer) GetIamPolicy(context.Context, *iampb.GetIamPolicyRequest) (*iampb.Policy, error) {
	if s.GetIAMPolicyErr != nil {
		return nil, s.GetIAMPolicyErr
	}
	return s.Policy, nil
}

func (s *FakeProjectsServer) SetIamPolicy(_ context.Context, r *iampb.SetIamPolicyRequest) (*iampb.Policy, error) {
	if s.SetIAMPolicyErr != nil {
		return nil, s.SetIAMPolicyErr
	}
	s.Policy = r.Policy
	return s.Policy, nil
}

// SetupFakeClients starts fake gRPC backends for the given servers and
// returns clients connected to them.
func SetupFakeClients(t *testing.T, ctx context.Context, rolesServer *FakeRolesServer, projectsServer *FakeProjectsServer) (*admin.IamClient, *resourcemanager.ProjectsClient) {
	t.Helper()

	rolesAddr, rolesConn := testutil.FakeGRPCServer(t, func(s *grpc.Server) {
		adminpb.RegisterIAMServer(s, rolesServer)
	})
	t.Cleanup(func() {
		rolesConn.Close()
	})
	rolesClient, err := admin.NewIamClient(ctx, option.WithGRPCConn(rolesConn))
	if err != nil {
		t.Fatalf("creating client for fake at %q: %v", rolesAddr, err)
	}

	projectsAddr, projectsConn := testutil.FakeGRPCServer(t, func(s *grpc.Server) {
		resourcemanagerpb.RegisterProjectsServer(s, projectsServer)
	})
	t.Cleanup(func() {
		projectsConn.Close()
	})
	projectsClient, err := resourcemanager.NewProjectsClient(ctx, option.WithGRPCConn(projectsConn))
	if err != nil {
		t.Fatalf("creating client for fake at %q: %v", projectsAddr, err)
	}

	return rolesClient, projectsClient
}
