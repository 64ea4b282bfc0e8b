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
	"io"

	"github.com/abcxyz/pkg/multicloser"
	"github.com/platform-partners/roleadmin/pkg/directory"
	"gopkg.in/yaml.v3"

	admin "cloud.google.com/go/iam/admin/apiv1"
	resourcemanager "cloud.google.com/go/resourcemanager/apiv3"
)

// encodeYaml writes YAML encoding of v to w.
func encodeYaml(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode to yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to close yaml encoder: %w", err)
	}

	return nil
}

// printHeader prints the hearder to w.
func printHeader(w io.Writer, header string) {
	fmt.Fprintf(w, "------%s------\n", header)
}

func newDirectory(ctx context.Context, project string, dryRun bool) (directory.Directory, *multicloser.Closer, error) {
	var closer *multicloser.Closer

	// Create IAM admin and resource manager clients.
	rolesClient, err := admin.NewIamClient(ctx)
	if err != nil {
		return nil, closer, fmt.Errorf("failed to create iam admin client: %w", err)
	}
	closer = multicloser.Append(closer, rolesClient.Close)

	projectsClient, err := resourcemanager.NewProjectsClient(ctx)
	if err != nil {
		return nil, closer, fmt.Errorf("failed to create projects client: %w", err)
	}
	closer = multicloser.Append(closer, projectsClient.Close)

	var dir directory.Directory = directory.NewGoogle(project, rolesClient, projectsClient)
	if dryRun {
		dir = directory.NewDryRun(dir)
	}
	return dir, closer, nil
}
