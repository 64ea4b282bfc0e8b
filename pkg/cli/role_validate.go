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
	"github.com/platform-partners/roleadmin/apis/v1alpha1"
	"github.com/platform-partners/roleadmin/pkg/requestutil"
	"github.com/posener/complete/v2/predict"
)

var _ cli.Command = (*RoleValidateCommand)(nil)

// RoleValidateCommand validates role declaration files.
type RoleValidateCommand struct {
	cli.BaseCommand

	flagConfig string
}

func (c *RoleValidateCommand) Desc() string {
	return `Validate the role declaration YAML file at the given path`
}

func (c *RoleValidateCommand) Help() string {
	return `
Usage: {{ COMMAND }} [options]

Validate the role declaration YAML file at the given path:

      roleadmin role validate -config "/path/to/role.yaml"
`
}

func (c *RoleValidateCommand) Flags() *cli.FlagSet {
	set := cli.NewFlagSet()

	// Command options
	f := set.NewSection("COMMAND OPTIONS")

	f.StringVar(&cli.StringVar{
		Name:    "config",
		Target:  &c.flagConfig,
		Example: "/path/to/role.yaml",
		Predict: predict.Files("*"),
		Usage:   `The path of the role declaration file, in YAML format.`,
	})

	return set
}

func (c *RoleValidateCommand) Run(ctx context.Context, args []string) error {
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

	return c.validate(ctx)
}

func (c *RoleValidateCommand) validate(ctx context.Context) error {
	// Read role declaration from YAML file.
	req, err := requestutil.ReadFromPath(c.flagConfig)
	if err != nil {
		return fmt.Errorf("failed to read %T: %w", req, err)
	}

	if err := v1alpha1.ValidateRoleRequest(req); err != nil {
		return fmt.Errorf("failed to validate %T: %w", req, err)
	}
	c.Outf("Successfully validated role declaration")

	return nil
}
