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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/header"
	"github.com/NVIDIA/device-fingerprint/pkg/serializer"
	"github.com/NVIDIA/device-fingerprint/pkg/signer"
)

// signedDocument is the subset of a fingerprint document verify reads.
// The fingerprint is kept raw so nested values are verified as written.
type signedDocument struct {
	Kind        header.Kind       `json:"kind"`
	Fingerprint json.RawMessage   `json:"fingerprint"`
	Signature   *signer.Signature `json:"signature"`
}

func (a *app) verifyCmd() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify the signature of a fingerprint",
		Description: `Verify a fingerprint written by the snapshot command.

The input is either the flat JSON fingerprint, with the signature given by
--signature, or a JSON fingerprint document that carries its signature.
HMAC signatures use the configured HMAC key, RSA signatures the RSA key.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"f"},
				Usage:    "Fingerprint file, - for stdin",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "signature",
				Usage: "Base64 signature, or @path to read it from a file",
			},
			&cli.StringFlag{
				Name:  "mode",
				Value: string(signer.ModeHMAC),
				Usage: fmt.Sprintf("Mode of --signature (%s, %s)", signer.ModeHMAC, signer.ModeRSA),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			data, err := readInput(cmd, cmd.String("input"))
			if err != nil {
				return err
			}

			canonical, sig, err := parseSigned(data)
			if err != nil {
				return err
			}

			if raw := cmd.String("signature"); raw != "" {
				if sig, err = readSignature(signer.Mode(cmd.String("mode")), raw); err != nil {
					return err
				}
			}
			if sig == nil {
				return fperrors.New(fperrors.ErrCodeInvalidRequest, "no signature given and none found in the input")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if sig.Mode == signer.ModeRSA {
				cfg.UseRSAAppKey = true
			}
			sg, err := signer.FromConfig(cfg)
			if err != nil {
				return err
			}

			if err := verify(sg, canonical, sig); err != nil {
				return err
			}
			_, err = fmt.Fprintf(stdout(cmd), "signature valid (%s)\n", sig.Mode)
			return err
		},
	}
}

func readInput(cmd *cli.Command, path string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		var r io.Reader = os.Stdin
		if root := cmd.Root(); root.Reader != nil {
			r = root.Reader
		}
		data, err = io.ReadAll(r)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("failed to read %q", path), err)
	}
	return data, nil
}

// parseSigned returns the canonical fingerprint bytes of data and the
// embedded signature, if data is a fingerprint document.
func parseSigned(data []byte) ([]byte, *signer.Signature, error) {
	var doc signedDocument
	if err := json.Unmarshal(data, &doc); err == nil && doc.Kind == header.KindFingerprint {
		canonical, err := serializer.Canonicalize(doc.Fingerprint)
		if err != nil {
			return nil, nil, err
		}
		return canonical, doc.Signature, nil
	}

	canonical, err := serializer.Canonicalize(data)
	if err != nil {
		return nil, nil, err
	}
	return canonical, nil, nil
}

func readSignature(mode signer.Mode, raw string) (*signer.Signature, error) {
	if path, ok := strings.CutPrefix(raw, "@"); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("failed to read signature %q", path), err)
		}
		raw = string(data)
	}
	return signer.ParseSignature(mode, strings.TrimSpace(raw))
}

// verify checks HMAC signatures over the canonical bytes and RSA
// signatures over the decoded fingerprint.
func verify(sg *signer.Signer, canonical []byte, sig *signer.Signature) error {
	if sig.Mode == signer.ModeHMAC {
		return sg.VerifyBytes(canonical, sig)
	}
	fp, err := serializer.ParseFlatJSON(canonical)
	if err != nil {
		return err
	}
	return sg.Verify(fp, sig)
}
