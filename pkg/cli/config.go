// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
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

	"github.com/urfave/cli/v3"
)

func (a *app) configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Write the effective configuration to a file",
		Description: `Resolve the configuration file and the global flags and write the
result. Files ending in .json are written as JSON, anything else as YAML.

  fingerprint --caching-time 1d --patch HardwareID=TEST-ID config --output fingerprint.yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"o"},
				Usage:    "Output file path",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := cmd.String("output")
			if err := cfg.Save(ctx, path); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "configuration written to %s\n", path)
			return err
		},
	}
}
