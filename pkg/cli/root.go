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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/device-fingerprint/pkg/collector"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/logging"
)

const (
	name           = "fingerprint"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// app carries the dependencies shared by the commands.
type app struct {
	// registry overrides the host probes when set.
	registry *collector.Registry
}

// Execute runs the command line tool and exits on failure.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: 2 for cancellation
// and timeouts, 1 otherwise.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		fperrors.IsCode(err, fperrors.ErrCodeTimeout):
		return 2
	default:
		return 1
	}
}

func newRootCmd(a *app) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Device fingerprint collection and signing",
		Version:               fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		EnableShellCompletion: true,
		ShellComplete:         commandLister,
		// patch values may be JSON with commas
		DisableSliceFlagSeparator: true,
		Flags:                     globalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			a.snapshotCmd(),
			a.deviceNameCmd(),
			a.metricsCmd(),
			a.verifyCmd(),
			a.diffCmd(),
			a.configCmd(),
		},
	}
}

// commandLister prints the visible subcommands for shell completion.
func commandLister(_ context.Context, cmd *cli.Command) {
	if cmd == nil {
		return
	}
	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}
	for _, sub := range cmd.Commands {
		if sub.Hidden {
			continue
		}
		fmt.Fprintln(w, sub.Name)
	}
}
