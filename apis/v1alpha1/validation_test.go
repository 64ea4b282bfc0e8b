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

import (
	"testing"

	"github.com/abcxyz/pkg/testutil"
)

func TestValidateRoleRequest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		request       *RoleRequest
		wantErrSubstr string
	}{
		{
			name: "valid",
			request: &RoleRequest{
				ID:          "sheetsAnalyst",
				Title:       "Sheets Analyst",
				Description: "Read access for spreadsheet users",
				Stage:       "GA",
				Permissions: []string{
					"bigquery.tables.getData",
					"resourcemanager.projects.get",
				},
			},
		},
		{
			name: "valid_empty_permissions",
			request: &RoleRequest{
				ID:    "emptyRole",
				Title: "Empty Role",
			},
		},
		{
			name: "missing_id",
			request: &RoleRequest{
				Title: "Sheets Analyst",
			},
			wantErrSubstr: "role id is required",
		},
		{
			name: "invalid_id",
			request: &RoleRequest{
				ID:    "no",
				Title: "Sheets Analyst",
			},
			wantErrSubstr: `role id "no" must match`,
		},
		{
			name: "missing_title",
			request: &RoleRequest{
				ID: "sheetsAnalyst",
			},
			wantErrSubstr: "role title is required",
		},
		{
			name: "invalid_stage",
			request: &RoleRequest{
				ID:    "sheetsAnalyst",
				Title: "Sheets Analyst",
				Stage: "EXPERIMENTAL",
			},
			wantErrSubstr: `stage "EXPERIMENTAL" isn't one of [GA, BETA, ALPHA, DISABLED]`,
		},
		{
			name: "invalid_permission",
			request: &RoleRequest{
				ID:          "sheetsAnalyst",
				Title:       "Sheets Analyst",
				Permissions: []string{"not a permission"},
			},
			wantErrSubstr: `permission "not a permission" is not a valid format`,
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateRoleRequest(tc.request)
			if diff := testutil.DiffErrString(err, tc.wantErrSubstr); diff != "" {
				t.Errorf("ValidateRoleRequest(%+v) got unexpected error: %s", tc.request, diff)
			}
		})
	}
}

func TestNormalizePrincipal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		principal     string
		want          string
		wantErrSubstr string
	}{
		{
			name:      "bare_email",
			principal: "analyst@example.com",
			want:      "user:analyst@example.com",
		},
		{
			name:      "prefixed_email",
			principal: "user:analyst@example.com",
			want:      "user:analyst@example.com",
		},
		{
			name:      "surrounding_whitespace",
			principal: "  analyst@example.com ",
			want:      "user:analyst@example.com",
		},
		{
			name:          "empty",
			principal:     "   ",
			wantErrSubstr: "principal is empty",
		},
		{
			name:          "wrong_member_type",
			principal:     "group:analysts@example.com",
			wantErrSubstr: `is not of "user" type (got "group")`,
		},
		{
			name:          "not_an_email",
			principal:     "analyst",
			wantErrSubstr: "does not appear to be a valid email address",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizePrincipal(tc.principal)
			if diff := testutil.DiffErrString(err, tc.wantErrSubstr); diff != "" {
				t.Errorf("NormalizePrincipal(%q) got unexpected error: %s", tc.principal, diff)
			}
			if got != tc.want {
				t.Errorf("NormalizePrincipal(%q) got %q, want %q", tc.principal, got, tc.want)
			}
		})
	}
}
