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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/defaults"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/fingerprint"
	"github.com/NVIDIA/device-fingerprint/pkg/serializer"
	"github.com/NVIDIA/device-fingerprint/pkg/signer"
)

const (
	variantFull   = "full"
	variantActive = "active"
)

func (a *app) snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Collect a device fingerprint",
		Description: `Collect a fingerprint of the current device.

The metric set is selected with --variant (legacy, extended, mixed, full or
active) or listed explicitly with --metric. Metrics disabled by configuration
are left out of variants and reported as null when requested explicitly.

The flat format writes the canonical compact JSON that signatures cover.
The json and yaml formats wrap the fingerprint in a versioned document.

# Examples

Active metric set, signed:
  fingerprint --hmac-key secret snapshot --sign

Mixed variant with coordinates as YAML:
  fingerprint --bluetooth snapshot --variant mixed --coordinates --format yaml

Selected metrics with a patched hardware identifier:
  fingerprint --patch HardwareID=TEST-ID snapshot --metric HardwareID --metric DeviceName`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "variant",
				Value: variantActive,
				Usage: fmt.Sprintf("Metric set (supported values: %s, %s, %s)",
					joinVariants(), variantFull, variantActive),
			},
			&cli.BoolFlag{
				Name:  "coordinates",
				Usage: "Include geolocation metrics in the variant",
			},
			&cli.StringSliceFlag{
				Name:    "metric",
				Aliases: []string{"m"},
				Usage:   "Collect exactly these metrics (can be repeated, overrides --variant)",
			},
			&cli.BoolFlag{
				Name:  "sign",
				Usage: "Sign the fingerprint with the configured key",
			},
			&cli.StringFlag{
				Name:  "signature-output",
				Usage: "Write the base64 signature to this file (flat and table formats)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.CLISnapshotTimeout,
				Usage: "Overall timeout of the collection",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			svc, err := a.newService(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, withTimeout(cmd, cmd.Duration("timeout")))
			defer cancel()

			out, err := collect(ctx, svc, cmd)
			if err != nil {
				return err
			}

			if cmd.Bool("sign") {
				if _, err := svc.Sign(ctx, out); err != nil {
					return err
				}
			}

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()

			switch outFormat {
			case serializer.FormatFlat, serializer.FormatTable:
				if err := ser.Serialize(ctx, out.Fingerprint); err != nil {
					return err
				}
				return writeSignature(cmd, out.Signature)
			default:
				return ser.Serialize(ctx, svc.Document(out))
			}
		},
	}
}

func joinVariants() string {
	names := make([]string, len(catalog.Variants))
	for i, v := range catalog.Variants {
		names[i] = v.String()
	}
	return strings.Join(names, ", ")
}

// collect runs the snapshot selected by the command flags.
func collect(ctx context.Context, svc *fingerprint.Service, cmd *cli.Command) (*fingerprint.Output, error) {
	if metrics := cmd.StringSlice("metric"); len(metrics) > 0 {
		ids, err := catalog.Parse(metrics)
		if err != nil {
			return nil, err
		}
		return svc.CustomSnapshot(ctx, ids, fingerprint.FormatFlatJSON)
	}

	switch v := strings.ToLower(cmd.String("variant")); v {
	case variantFull:
		return svc.FullSnapshot(ctx, fingerprint.FormatFlatJSON)
	case variantActive, "":
		return svc.ActiveSnapshot(ctx, fingerprint.FormatFlatJSON)
	default:
		variant, err := catalog.ParseVariant(v)
		if err != nil {
			return nil, err
		}
		return svc.Snapshot(ctx, fingerprint.FormatFlatJSON, variant, cmd.Bool("coordinates"))
	}
}

// writeSignature writes sig to the signature output file, or to the error
// stream so it does not mix with the fingerprint bytes.
func writeSignature(cmd *cli.Command, sig *signer.Signature) error {
	if sig == nil {
		return nil
	}
	if path := cmd.String("signature-output"); path != "" {
		if err := os.WriteFile(path, []byte(sig.String()+"\n"), 0o600); err != nil {
			return fperrors.Wrap(fperrors.ErrCodeInternal, "failed to write signature", err)
		}
		return nil
	}
	var w io.Writer = os.Stderr
	if root := cmd.Root(); root.ErrWriter != nil {
		w = root.ErrWriter
	}
	_, err := fmt.Fprintf(w, "%s signature: %s\n", sig.Mode, sig)
	return err
}
