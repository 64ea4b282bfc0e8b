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

// Package cli implements the commands for the roleadmin CLI.
package cli

import (
	"context"

	"github.com/abcxyz/pkg/cli"
	"github.com/platform-partners/roleadmin/internal/version"
)

// RootCmd defines the starting command structure.
var RootCmd = func() cli.Command {
	return &cli.RootCommand{
		Name:    "roleadmin",
		Version: version.HumanVersion,
		Commands: map[string]cli.CommandFactory{
			"role": func() cli.Command {
				return &cli.RootCommand{
					Name:        "role",
					Description: "Perform operations on project custom roles",
					Commands: map[string]cli.CommandFactory{
						"create": func() cli.Command {
							return &RoleCreateCommand{}
						},
						"update": func() cli.Command {
							return &RoleUpdateCommand{}
						},
						"describe": func() cli.Command {
							return &RoleDescribeCommand{}
						},
						"assign": func() cli.Command {
							return &RoleAssignCommand{}
						},
						"list-users": func() cli.Command {
							return &RoleListUsersCommand{}
						},
						"validate": func() cli.Command {
							return &RoleValidateCommand{}
						},
					},
				}
			},
		},
	}
}

// Run executes the CLI.
func Run(ctx context.Context, args []string) error {
	return RootCmd().Run(ctx, args) //nolint:wrapcheck // Want passthrough
}
