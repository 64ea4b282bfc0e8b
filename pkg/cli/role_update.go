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
	"github.com/platform-partners/roleadmin/apis/v1alpha1"
	"github.com/platform-partners/roleadmin/pkg/reconciler"
	"github.com/platform-partners/roleadmin/pkg/requestutil"
	"github.com/posener/complete/v2/predict"
)

var _ cli.Command = (*RoleUpdateCommand)(nil)

// RoleUpdateCommand reconciles an existing custom role to a declaration file.
type RoleUpdateCommand struct {
	cli.BaseCommand

	flagProject string

	flagConfig string

	flagDryRun bool

	flagVerbose bool

	// testReconciler is used for testing only.
	testReconciler roleReconciler
}

func (c *RoleUpdateCommand) Desc() string {
	return `Update the custom role to match the given YAML declaration`
}

func (c *RoleUpdateCommand) Help() string {
	return `
Usage: {{ COMMAND }} [options]

Update the custom role to match the given YAML declaration:

      {{ COMMAND }} -project "my-project" -config "/path/to/role.yaml"

Preview the permission diff without writing anything:

      {{ COMMAND }} -project "my-project" -config "/path/to/role.yaml" -dry-run
`
}

func (c *RoleUpdateCommand) Flags() *cli.FlagSet {
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

	f.BoolVar(&cli.BoolVar{
		Name:    "dry-run",
		Target:  &c.flagDryRun,
		Default: false,
		Usage:   `Compute and report the permission diff without writing anything.`,
	})

	f.BoolVar(&cli.BoolVar{
		Name:    "verbose",
		Target:  &c.flagVerbose,
		Default: false,
		Usage:   `Turn on verbose mode to print the resulting role state.`,
	})

	return set
}

func (c *RoleUpdateCommand) Run(ctx context.Context, args []string) error {
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

	return c.updateRole(ctx)
}

func (c *RoleUpdateCommand) updateRole(ctx context.Context) error {
	// Read role declaration from file path.
	req, err := requestutil.ReadFromPath(c.flagConfig)
	if err != nil {
		return fmt.Errorf("failed to read %T: %w", req, err)
	}

	if err := v1alpha1.ValidateRoleRequest(req); err != nil {
		return fmt.Errorf("failed to validate %T: %w", req, err)
	}

	rec := c.testReconciler
	if rec == nil {
		dir, closer, err := newDirectory(ctx, c.flagProject, c.flagDryRun)
		defer func() {
			if err := closer.Close(); err != nil {
				logging.FromContext(ctx).Errorw("failed to close clients", "error", err)
			}
		}()
		if err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		rec = reconciler.New(dir)
	}

	result, err := rec.Reconcile(ctx, req, reconciler.ActionUpdate)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if !c.flagVerbose {
		result.State = nil
	}

	header := "Successfully Updated Custom Role"
	if !result.Changed {
		header = "Custom Role Already Up To Date"
	}
	printHeader(c.Stdout(), header)
	if err := encodeYaml(c.Stdout(), result); err != nil {
		return fmt.Errorf("failed to output result: %w", err)
	}

	return nil
}
