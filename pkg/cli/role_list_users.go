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

	"github.com/abcxyz/pkg/cli"
	"github.com/abcxyz/pkg/logging"
	"github.com/platform-partners/roleadmin/pkg/binding"
	"github.com/platform-partners/roleadmin/pkg/requestutil"
	"github.com/posener/complete/v2/predict"
)

var _ cli.Command = (*RoleListUsersCommand)(nil)

// RoleListUsersCommand lists the principals bound to a custom role.
type RoleListUsersCommand struct {
	cli.BaseCommand

	flagProject string

	flagConfig string

	// testManager is used for testing only.
	testManager principalManager
}

func (c *RoleListUsersCommand) Desc() string {
	return `List the principals bound to the declared custom role`
}

func (c *RoleListUsersCommand) Help() string {
	return `
Usage: {{ COMMAND }} [options]

List the principals bound to the declared custom role:

      {{ COMMAND }} -project "my-project" -config "/path/to/role.yaml"
`
}

func (c *RoleListUsersCommand) Flags() *cli.FlagSet {
	set := c.NewFlagSet()

	// Command options
	f := set.NewSection("COMMAND OPTIONS")

	f.StringVar(&cli.StringVar{
		Name:    "project",
		Target:  &c.flagProject,
		Example: "my-project",
		Usage:   `The ID of the project that owns the custom role.`,
	})

	f.StringVar(&cli.StringVar{
		Name:    "config",
		Target:  &c.flagConfig,
		Example: "/path/to/role.yaml",
		Predict: predict.Files("*"),
		Usage:   `The path of the role declaration file, in YAML format.`,
	})

	return set
}

func (c *RoleListUsersCommand) Run(ctx context.Context, args []string) error {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	args = f.Args()
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %q", args)
	}

	if c.flagConfig == "" {
		return fmt.Errorf("config is required")
	}

	if c.flagProject == "" {
		return fmt.Errorf("project is required")
	}

	return c.listUsers(ctx)
}

func (c *RoleListUsersCommand) listUsers(ctx context.Context) error {
	// Read role declaration from file path.
	req, err := requestutil.ReadFromPath(c.flagConfig)
	if err != nil {
		return fmt.Errorf("failed to read %T: %w", req, err)
	}

	m := c.testManager
	if m == nil {
		dir, closer, err := newDirectory(ctx, c.flagProject, false)
		defer func() {
			if err := closer.Close(); err != nil {
				logging.FromContext(ctx).Errorw("failed to close clients", "error", err)
			}
		}()
		if err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		m = binding.New(dir)
	}

	principals, err := m.ListPrincipals(ctx, req.ID)
	if err != nil {
		return fmt.Errorf("failed to list principals: %w", err)
	}

	printHeader(c.Stdout(), fmt.Sprintf("Principals Bound To %q", req.ID))
	if err := encodeYaml(c.Stdout(), principals); err != nil {
		return fmt.Errorf("failed to output principals: %w", err)
	}

	return nil
}
