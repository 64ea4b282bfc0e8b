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

package requestutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/platform-partners/roleadmin/apis/v1alpha1"

	pkgtestutil "github.com/abcxyz/pkg/testutil"
)

func TestReadFromPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fileContentByName := map[string]string{
		"valid.yaml": `
id: sheetsAnalyst
title: Sheets Analyst
description: Read access for spreadsheet users
stage: GA
permissions:
  - bigquery.tables.getData
  - bigquery.jobs.create
  - resourcemanager.projects.get
`,
		"invalid.yaml": `bananas`,
	}
	for name, content := range fileContentByName {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		name          string
		path          string
		want          *v1alpha1.RoleRequest
		wantErrSubstr string
	}{
		{
			name: "valid_file",
			path: filepath.Join(dir, "valid.yaml"),
			want: &v1alpha1.RoleRequest{
				ID:          "sheetsAnalyst",
				Title:       "Sheets Analyst",
				Description: "Read access for spreadsheet users",
				Stage:       "GA",
				Permissions: []string{
					"bigquery.tables.getData",
					"bigquery.jobs.create",
					"resourcemanager.projects.get",
				},
			},
		},
		{
			name:          "invalid_yaml",
			path:          filepath.Join(dir, "invalid.yaml"),
			wantErrSubstr: "failed to unmarshal yaml",
		},
		{
			name:          "file_not_found",
			path:          filepath.Join(dir, "missing.yaml"),
			wantErrSubstr: "failed to read file",
		},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadFromPath(tc.path)
			if diff := pkgtestutil.DiffErrString(err, tc.wantErrSubstr); diff != "" {
				t.Errorf("ReadFromPath(%q) got unexpected error: %s", tc.path, diff)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ReadFromPath(%q) got diff (-want, +got):\n%s", tc.path, diff)
			}
		})
	}
}
