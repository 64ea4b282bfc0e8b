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
	"strings"

	"github.com/abcxyz/pkg/cli"
	"github.com/abcxyz/pkg/logging"
	"github.com/platform-partners/roleadmin/pkg/binding"
	"github.com/platform-partners/roleadmin/pkg/requestutil"
	"github.com/posener/complete/v2/predict"
)

var _ cli.Command = (*RoleAssignCommand)(nil)

// principalManager interface that binds principals to a role and lists them.
type principalManager interface {
	Assign(context.Context, string, []string) (*binding.Report, error)
	ListPrincipals(context.Context, string) ([]string, error)
}

// RoleAssignCommand grants a custom role to the given principals.
type RoleAssignCommand struct {
	cli.BaseCommand

	flagProject string

	flagConfig string

	flagUsers string

	flagDryRun bool

	// testManager is used for testing only.
	testManager principalManager
}

func (c *RoleAssignCommand) Desc() string {
	return `Grant the declared custom role to the given principals`
}

func (c *RoleAssignCommand) Help() string {
	return `
Usage: {{ COMMAND }} [options]

Grant the declared custom role to the given principals:

      {{ COMMAND }} -project "my-project" -config "/path/to/role.yaml" -users "a@example.com,b@example.com"

Preview the grants without writing anything:

      {{ COMMAND }} -project "my-project" -config "/path/to/role.yaml" -users "a@example.com" -dry-run
`
}

func (c *RoleAssignCommand) Flags() *cli.FlagSet {
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

	f.StringVar(&cli.StringVar{
		Name:    "users",
		Target:  &c.flagUsers,
		Example: "a@example.com,b@example.com",
		Usage:   `Comma separated emails of the users to grant the role to.`,
	})

	f.BoolVar(&cli.BoolVar{
		Name:    "dry-run",
		Target:  &c.flagDryRun,
		Default: false,
		Usage:   `Compute and report the grants without writing anything.`,
	})

	return set
}

func (c *RoleAssignCommand) Run(ctx context.Context, args []string) error {
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

	if c.flagUsers == "" {
		return fmt.Errorf("users is required")
	}

	return c.assignRole(ctx)
}

func (c *RoleAssignCommand) assignRole(ctx context.Context) error {
	// Read role declaration from file path.
	req, err := requestutil.ReadFromPath(c.flagConfig)
	if err != nil {
		return fmt.Errorf("failed to read %T: %w", req, err)
	}

	m := c.testManager
	if m == nil {
		dir, closer, err := newDirectory(ctx, c.flagProject, c.flagDryRun)
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

	report, err := m.Assign(ctx, req.ID, strings.Split(c.flagUsers, ","))
	if err != nil {
		return fmt.Errorf("failed to assign role: %w", err)
	}

	printHeader(c.Stdout(), "Role Assignment Report")
	if err := encodeYaml(c.Stdout(), report); err != nil {
		return fmt.Errorf("failed to output report: %w", err)
	}

	if report.HasFailures() {
		return fmt.Errorf("failed to bind %d principal(s) to role %q", report.Failed, report.RoleID)
	}

	return nil
}
