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
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/defaults"
	"github.com/NVIDIA/device-fingerprint/pkg/header"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/NVIDIA/device-fingerprint/pkg/serializer"
)

func (a *app) deviceNameCmd() *cli.Command {
	return &cli.Command{
		Name:  "device-name",
		Usage: "Print the device name without collecting a fingerprint",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			svc, err := a.newService(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, withTimeout(cmd, defaults.CommandTimeout))
			defer cancel()

			_, err = fmt.Fprintln(stdout(cmd), svc.DeviceName(ctx))
			return err
		},
	}
}

// metricCatalog is the document written by the metrics command.
type metricCatalog struct {
	header.Header `json:",inline" yaml:",inline"`

	Metrics []catalog.Descriptor `json:"metrics" yaml:"metrics"`
}

func (a *app) metricsCmd() *cli.Command {
	return &cli.Command{
		Name:  "metrics",
		Usage: "List the metric catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "variant",
				Usage: fmt.Sprintf("Only list the metrics of a variant (supported values: %s)", joinVariants()),
			},
			&cli.BoolFlag{
				Name:  "coordinates",
				Usage: "Include geolocation metrics in the variant",
			},
			outputFlag,
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(serializer.FormatTable),
				Usage:   "Output format (json, yaml, table)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			descriptors := catalog.Descriptors()
			if v := cmd.String("variant"); v != "" {
				variant, err := catalog.ParseVariant(v)
				if err != nil {
					return err
				}
				ids := variant.IDs(cmd.Bool("coordinates"))
				descriptors = slices.DeleteFunc(descriptors, func(d catalog.Descriptor) bool {
					return !slices.Contains(ids, d.ID)
				})
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			if outFormat == serializer.FormatTable {
				rows := make(map[string]string, len(descriptors))
				for _, d := range descriptors {
					rows[catalog.Name(d.ID)] = fmt.Sprintf("%s/%s %s", d.Family, d.Kind, d.Description)
				}
				return ser.Serialize(ctx, rows)
			}

			doc := metricCatalog{
				Header:  *header.New(header.KindCatalog, version, time.Now()),
				Metrics: descriptors,
			}
			return ser.Serialize(ctx, doc)
		},
	}
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func (a *app) diffCmd() *cli.Command {
	return &cli.Command{
		Name:  "diff",
		Usage: "Compare two saved fingerprints",
		Description: `Report the metrics that were added, removed or changed between two
fingerprints. Inputs are flat fingerprints or JSON fingerprint documents.

  fingerprint diff --before yesterday.json --after today.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "before",
				Usage:    "Baseline fingerprint file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "after",
				Usage:    "Fingerprint file to compare against the baseline",
				Required: true,
			},
			outputFlag,
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Value:   string(serializer.FormatTable),
				Usage:   "Output format (json, yaml, table)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			before, err := readFingerprint(cmd, cmd.String("before"))
			if err != nil {
				return err
			}
			after, err := readFingerprint(cmd, cmd.String("after"))
			if err != nil {
				return err
			}
			changes := measurement.Compare(before, after)
			slog.Debug("fingerprints compared", "changes", len(changes))

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			if outFormat == serializer.FormatTable {
				rows := make(map[string]string, len(changes))
				for _, c := range changes {
					rows[catalog.Name(c.ID)] = fmt.Sprintf("%s: %s -> %s", c.Type, c.Before, c.After)
				}
				return ser.Serialize(ctx, rows)
			}
			if changes == nil {
				changes = []measurement.Change{}
			}
			return ser.Serialize(ctx, changes)
		},
	}
}

// readFingerprint loads a flat fingerprint or the fingerprint of a document.
func readFingerprint(cmd *cli.Command, path string) (*measurement.Fingerprint, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	canonical, _, err := parseSigned(data)
	if err != nil {
		return nil, err
	}
	return serializer.ParseFlatJSON(canonical)
}
