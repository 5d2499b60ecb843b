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

package signer

import (
	"crypto"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/hkdf"

	"github.com/NVIDIA/device-fingerprint/pkg/catalog"
	"github.com/NVIDIA/device-fingerprint/pkg/config"
	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
	"github.com/NVIDIA/device-fingerprint/pkg/measurement"
	"github.com/NVIDIA/device-fingerprint/pkg/serializer"
)

// Mode identifies the signature algorithm.
type Mode string

const (
	// ModeHMAC is an HMAC-SHA256 over the canonical flat JSON.
	ModeHMAC Mode = "hmac-sha256"
	// ModeRSA is an RSA PKCS#1 v1.5 signature over the derived application key.
	ModeRSA Mode = "rsa-app-key"
)

// appKeyInfo is the HKDF context of the derived application key.
const appKeyInfo = "RSA_ApplicationKey"

// Signature is a detached fingerprint signature.
type Signature struct {
	Mode  Mode   `json:"mode" yaml:"mode"`
	Value []byte `json:"value" yaml:"value"`
}

// String returns the signature value in standard base64.
func (s *Signature) String() string {
	if s == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(s.Value)
}

// ParseSignature decodes a base64 signature value.
func ParseSignature(mode Mode, value string) (*Signature, error) {
	b, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "signature is not valid base64", err)
	}
	return &Signature{Mode: mode, Value: b}, nil
}

// Option configures a Signer.
type Option func(*Signer)

// WithHMACKey sets the HMAC key.
func WithHMACKey(key []byte) Option {
	return func(s *Signer) {
		s.hmacKey = key
	}
}

// WithRSAKey sets the RSA private key and selects RSA signing.
func WithRSAKey(key *rsa.PrivateKey) Option {
	return func(s *Signer) {
		s.rsaKey = key
		s.useRSA = true
	}
}

// WithRSAMode selects RSA signing without a key, which makes Sign report
// SIGNING_KEY_MISSING until a key is configured.
func WithRSAMode() Option {
	return func(s *Signer) {
		s.useRSA = true
	}
}

// Signer signs fingerprints. Signing is deterministic: the same record and
// key always produce the same signature.
type Signer struct {
	hmacKey []byte
	rsaKey  *rsa.PrivateKey
	useRSA  bool
}

// New creates a Signer.
func New(opts ...Option) *Signer {
	s := &Signer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromConfig creates a Signer from the signing settings of cfg. With
// UseRSAAppKey the RSA key file is loaded when one is configured.
func FromConfig(cfg *config.Config) (*Signer, error) {
	opts := []Option{WithHMACKey([]byte(cfg.HMACKey))}
	if cfg.UseRSAAppKey {
		opts = append(opts, WithRSAMode())
		if cfg.RSAKeyFile != "" {
			key, err := LoadRSAKey(cfg.RSAKeyFile)
			if err != nil {
				return nil, err
			}
			opts = append(opts, WithRSAKey(key))
		}
	}
	return New(opts...), nil
}

// Mode returns the algorithm Sign uses.
func (s *Signer) Mode() Mode {
	if s.useRSA {
		return ModeRSA
	}
	return ModeHMAC
}

// PublicKey returns the RSA public key, or nil in HMAC mode.
func (s *Signer) PublicKey() *rsa.PublicKey {
	if s.rsaKey == nil {
		return nil
	}
	return &s.rsaKey.PublicKey
}

// KeyID returns the hex SHA-256 of the DER encoded RSA public key, or ""
// when no RSA key is loaded.
func (s *Signer) KeyID() string {
	pub := s.PublicKey()
	if pub == nil {
		return ""
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:])
}

// Sign signs fp with the configured mode.
func (s *Signer) Sign(fp *measurement.Fingerprint) (*Signature, error) {
	if s.useRSA {
		return s.signRSA(fp)
	}
	data, err := serializer.FlatJSON(fp)
	if err != nil {
		return nil, err
	}
	return s.SignBytes(data)
}

// SignBytes computes the HMAC signature of canonical fingerprint bytes.
func (s *Signer) SignBytes(data []byte) (*Signature, error) {
	if len(s.hmacKey) == 0 {
		return nil, fperrors.New(fperrors.ErrCodeSigningKeyMissing, "no HMAC key configured")
	}
	mac := hmac.New(sha256.New, s.hmacKey)
	mac.Write(data)
	return &Signature{Mode: ModeHMAC, Value: mac.Sum(nil)}, nil
}

func (s *Signer) signRSA(fp *measurement.Fingerprint) (*Signature, error) {
	if s.rsaKey == nil {
		return nil, fperrors.New(fperrors.ErrCodeSigningKeyMissing, "no RSA key configured")
	}
	digest, err := appKeyDigest(fp)
	if err != nil {
		return nil, err
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.rsaKey, crypto.SHA256, digest)
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInternal, "failed to sign application key", err)
	}
	return &Signature{Mode: ModeRSA, Value: sig}, nil
}

// Verify checks sig against fp.
func (s *Signer) Verify(fp *measurement.Fingerprint, sig *Signature) error {
	if sig == nil {
		return fperrors.New(fperrors.ErrCodeInvalidRequest, "signature is nil")
	}
	switch sig.Mode {
	case ModeHMAC:
		data, err := serializer.FlatJSON(fp)
		if err != nil {
			return err
		}
		return s.VerifyBytes(data, sig)
	case ModeRSA:
		pub := s.PublicKey()
		if pub == nil {
			return fperrors.New(fperrors.ErrCodeSigningKeyMissing, "no RSA key configured")
		}
		digest, err := appKeyDigest(fp)
		if err != nil {
			return err
		}
		if err := rsa.VerifyPKCS1v15(pub, crypto.SHA256, digest, sig.Value); err != nil {
			return fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "signature mismatch", err)
		}
		return nil
	default:
		return fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown signature mode %q", sig.Mode))
	}
}

// VerifyBytes checks an HMAC signature over canonical fingerprint bytes.
func (s *Signer) VerifyBytes(data []byte, sig *Signature) error {
	want, err := s.SignBytes(data)
	if err != nil {
		return err
	}
	if sig == nil || sig.Mode != ModeHMAC || !hmac.Equal(want.Value, sig.Value) {
		return fperrors.New(fperrors.ErrCodeInvalidRequest, "signature mismatch")
	}
	return nil
}

// DeriveAppKey derives the 32-byte application key from the AppKey metric
// of fp, salted with its HardwareID.
func DeriveAppKey(fp *measurement.Fingerprint) ([]byte, error) {
	secret, ok := fp.Get(catalog.AppKey)
	if !ok || !measurement.IsAvailable(secret) {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest,
			"fingerprint has no AppKey to derive the application key from")
	}
	var salt []byte
	if hw, ok := fp.Get(catalog.HardwareID); ok && measurement.IsAvailable(hw) {
		salt = []byte(hw.String())
	}

	key := make([]byte, 32)
	r := hkdf.New(sha256.New, []byte(secret.String()), salt, []byte(appKeyInfo))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInternal, "failed to derive application key", err)
	}
	return key, nil
}

func appKeyDigest(fp *measurement.Fingerprint) ([]byte, error) {
	key, err := DeriveAppKey(fp)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(key)
	return sum[:], nil
}

// LoadRSAKey reads a PEM encoded PKCS#1 or PKCS#8 RSA private key.
func LoadRSAKey(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeSigningKeyMissing, "failed to read RSA key", err)
	}
	return ParseRSAKey(data)
}

// ParseRSAKey decodes a PEM encoded PKCS#1 or PKCS#8 RSA private key.
func ParseRSAKey(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, "RSA key is not PEM encoded")
	}
	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return key, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fperrors.Wrap(fperrors.ErrCodeInvalidRequest, "failed to parse RSA key", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("key is %T, not RSA", parsed))
	}
	return key, nil
}
