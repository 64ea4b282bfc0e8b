// Copyright 2023 The Authors (see AUTHORS file)
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

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abcxyz/pkg/logging"
	"github.com/abcxyz/pkg/testutil"
	"github.com/platform-partners/roleadmin/pkg/binding"
)

func TestRoleAssignCommand(t *testing.T) {
	t.Parallel()

	dir := testWriteRoleFiles(t)

	cases := []struct {
		name          string
		args          []string
		manager       *fakePrincipalManager
		expRoleID     string
		expPrincipals []string
		expOut        string
		expErr        string
	}{
		{
			name: "success",
			args: []string{
				"-project", "test",
				"-config", filepath.Join(dir, "valid.yaml"),
				"-users", "a@example.com,b@example.com",
			},
			manager: &fakePrincipalManager{
				report: &binding.Report{
					RoleID: "sheetsAnalyst",
					Outcomes: []*binding.Outcome{
						{Principal: "user:a@example.com", Status: binding.StatusBound},
						{Principal: "user:b@example.com", Status: binding.StatusAlreadyBound},
					},
					Bound:        1,
					AlreadyBound: 1,
				},
			},
			expRoleID:     "sheetsAnalyst",
			expPrincipals: []string{"a@example.com", "b@example.com"},
			expOut: `
------Role Assignment Report------
role: sheetsAnalyst
outcomes:
  - principal: user:a@example.com
    status: BOUND
  - principal: user:b@example.com
    status: ALREADY_BOUND
bound: 1
already_bound: 1
failed: 0
`,
		},
		{
			name: "partial_failure_exits_nonzero",
			args: []string{
				"-project", "test",
				"-config", filepath.Join(dir, "valid.yaml"),
				"-users", "a@example.com,b@example.com",
			},
			manager: &fakePrincipalManager{
				report: &binding.Report{
					RoleID: "sheetsAnalyst",
					Outcomes: []*binding.Outcome{
						{Principal: "user:a@example.com", Status: binding.StatusBound},
						{Principal: "user:b@example.com", Status: binding.StatusFailed, Error: "permission denied"},
					},
					Bound:  1,
					Failed: 1,
				},
			},
			expRoleID:     "sheetsAnalyst",
			expPrincipals: []string{"a@example.com", "b@example.com"},
			expOut: `
------Role Assignment Report------
role: sheetsAnalyst
outcomes:
  - principal: user:a@example.com
    status: BOUND
  - principal: user:b@example.com
    status: FAILED
    error: permission denied
bound: 1
already_bound: 0
failed: 1
`,
			expErr: `failed to bind 1 principal(s) to role "sheetsAnalyst"`,
		},
		{
			name:    "missing_users",
			args:    []string{"-project", "test", "-config", filepath.Join(dir, "valid.yaml")},
			manager: &fakePrincipalManager{},
			expErr:  `users is required`,
		},
		{
			name:    "missing_config",
			args:    []string{"-project", "test", "-users", "a@example.com"},
			manager: &fakePrincipalManager{},
			expErr:  `config is required`,
		},
		{
			name: "missing_project",
			args: []string{
				"-config", filepath.Join(dir, "valid.yaml"),
				"-users", "a@example.com",
			},
			manager: &fakePrincipalManager{},
			expErr:  `project is required`,
		},
		{
			name: "manager_failure",
			args: []string{
				"-project", "test",
				"-config", filepath.Join(dir, "valid.yaml"),
				"-users", "a@example.com",
			},
			manager: &fakePrincipalManager{
				injectErr: fmt.Errorf("injected error"),
			},
			expRoleID:     "sheetsAnalyst",
			expPrincipals: []string{"a@example.com"},
			expErr:        "injected error",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := logging.WithLogger(context.Background(), logging.TestLogger(t))

			var cmd RoleAssignCommand
			cmd.testManager = tc.manager
			_, stdout, _ := cmd.Pipe()

			args := append([]string{}, tc.args...)

			err := cmd.Run(ctx, args)
			if diff := testutil.DiffErrString(err, tc.expErr); diff != "" {
				t.Errorf("Process(%+v) got error diff (-want, +got):\n%s", tc.name, diff)
			}
			if diff := cmp.Diff(strings.TrimSpace(tc.expOut), strings.TrimSpace(stdout.String())); diff != "" {
				t.Errorf("Process(%+v) got output diff (-want, +got):\n%s", tc.name, diff)
			}
			if diff := cmp.Diff(tc.expRoleID, tc.manager.gotRoleID); diff != "" {
				t.Errorf("Process(%+v) got role ID diff (-want, +got):\n%s", tc.name, diff)
			}
			if diff := cmp.Diff(tc.expPrincipals, tc.manager.gotPrincipals); diff != "" {
				t.Errorf("Process(%+v) got principals diff (-want, +got):\n%s", tc.name, diff)
			}
		})
	}
}

type fakePrincipalManager struct {
	injectErr     error
	report        *binding.Report
	principals    []string
	gotRoleID     string
	gotPrincipals []string
}

func (m *fakePrincipalManager) Assign(ctx context.Context, roleID string, principals []string) (*binding.Report, error) {
	m.gotRoleID = roleID
	m.gotPrincipals = principals
	return m.report, m.injectErr
}

func (m *fakePrincipalManager) ListPrincipals(ctx context.Context, roleID string) ([]string, error) {
	m.gotRoleID = roleID
	return m.principals, m.injectErr
}
