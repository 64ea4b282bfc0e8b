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
	"github.com/platform-partners/roleadmin/apis/v1alpha1"
	"github.com/platform-partners/roleadmin/pkg/reconciler"
)

func TestRoleDescribeCommand(t *testing.T) {
	t.Parallel()

	dir := testWriteRoleFiles(t)

	cases := []struct {
		name       string
		args       []string
		reconciler *fakeReconciler
		expReq     *v1alpha1.RoleRequest
		expAction  reconciler.Action
		expOut     string
		expErr     string
	}{
		{
			name: "success",
			args: []string{"-project", "test", "-config", filepath.Join(dir, "valid.yaml")},
			reconciler: &fakeReconciler{
				result: &reconciler.Result{
					RoleID: "sheetsAnalyst",
					Action: reconciler.ActionDescribe,
					State:  testRoleState(),
				},
			},
			expReq:    testRoleRequest(),
			expAction: reconciler.ActionDescribe,
			expOut: `
------Custom Role------
name: projects/test/roles/sheetsAnalyst
id: sheetsAnalyst
title: Sheets Analyst
description: Read-only analytics access.
stage: GA
permissions:
  - bigquery.datasets.get
  - bigquery.tables.get
`,
		},
		{
			name:       "missing_config",
			args:       []string{"-project", "test"},
			reconciler: &fakeReconciler{},
			expErr:     `config is required`,
		},
		{
			name:       "missing_project",
			args:       []string{"-config", filepath.Join(dir, "valid.yaml")},
			reconciler: &fakeReconciler{},
			expErr:     `project is required`,
		},
		{
			name: "role_not_found",
			args: []string{"-project", "test", "-config", filepath.Join(dir, "valid.yaml")},
			reconciler: &fakeReconciler{
				injectErr: fmt.Errorf(`role "sheetsAnalyst" was not found`),
			},
			expReq:    testRoleRequest(),
			expAction: reconciler.ActionDescribe,
			expErr:    `role "sheetsAnalyst" was not found`,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := logging.WithLogger(context.Background(), logging.TestLogger(t))

			var cmd RoleDescribeCommand
			cmd.testReconciler = tc.reconciler
			_, stdout, _ := cmd.Pipe()

			args := append([]string{}, tc.args...)

			err := cmd.Run(ctx, args)
			if diff := testutil.DiffErrString(err, tc.expErr); diff != "" {
				t.Errorf("Process(%+v) got error diff (-want, +got):\n%s", tc.name, diff)
			}
			if diff := cmp.Diff(strings.TrimSpace(tc.expOut), strings.TrimSpace(stdout.String())); diff != "" {
				t.Errorf("Process(%+v) got output diff (-want, +got):\n%s", tc.name, diff)
			}
			if diff := cmp.Diff(tc.expReq, tc.reconciler.gotReq); diff != "" {
				t.Errorf("Process(%+v) got request diff (-want, +got):\n%s", tc.name, diff)
			}
			if diff := cmp.Diff(tc.expAction, tc.reconciler.gotAction); diff != "" {
				t.Errorf("Process(%+v) got action diff (-want, +got):\n%s", tc.name, diff)
			}
		})
	}
}
