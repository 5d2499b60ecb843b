// Package cli implements the command-line interface of the device
// fingerprint tool.
//
// # Commands
//
// snapshot - Collect a fingerprint:
//
//	fingerprint snapshot [--variant legacy|extended|mixed|full|active] [--coordinates]
//	                     [--metric NAME ...] [--sign] [--output FILE] [--format flat|json|yaml|table]
//
// The flat format (default) writes the canonical compact JSON that signatures
// cover. The json and yaml formats wrap the fingerprint in a versioned
// document that also carries the signature.
//
// device-name - Print the device name:
//
//	fingerprint device-name
//
// metrics - List the metric catalog:
//
//	fingerprint metrics [--variant mixed] [--format table|json|yaml]
//
// verify - Verify a signed fingerprint:
//
//	fingerprint --hmac-key secret verify --input fp.json --signature @fp.sig
//
// diff - Compare two saved fingerprints:
//
//	fingerprint diff --before old.json --after new.json
//
// config - Write the effective configuration:
//
//	fingerprint --caching-time 1d config --output fingerprint.yaml
//
// # Global Flags
//
//	--config, -c        Configuration file (YAML or JSON)
//	--hmac-key          HMAC signing secret (env: FP_HMAC_KEY)
//	--rsa-key           RSA private key file (env: FP_RSA_KEY)
//	--caching-time      disabled, 20s, 1d, 2d, 3d or 4d
//	--patch             Metric=value override, repeatable
//	--parameter         Metric added to active snapshots, repeatable
//	--log-level         debug, info, warn, error (env: LOG_LEVEL)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/NVIDIA/device-fingerprint/pkg/cli.version=1.0.0'"
package cli
