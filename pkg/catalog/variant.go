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

package catalog

import (
	"fmt"
	"slices"
	"strings"

	fperrors "github.com/NVIDIA/device-fingerprint/pkg/errors"
)

// Variant selects one of the predefined metric sets.
type Variant string

const (
	// VariantLegacy is the minimal basic set.
	VariantLegacy Variant = "legacy"
	// VariantExtended adds agent, network and key metrics to the legacy set.
	VariantExtended Variant = "extended"
	// VariantMixed blends the legacy set with behavioral and security probes.
	VariantMixed Variant = "mixed"
)

// Variants lists the predefined variants.
var Variants = []Variant{VariantLegacy, VariantExtended, VariantMixed}

// String returns the variant name.
func (v Variant) String() string {
	return string(v)
}

// ParseVariant parses a variant name (case-insensitive).
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Variants, v) {
		return v, nil
	}
	return "", fperrors.New(fperrors.ErrCodeInvalidRequest, fmt.Sprintf("unknown variant %q", s))
}

var legacySet = []ID{
	DeviceName, HardwareID, DeviceModel, TimeZoneDSTOffset, MNC, MCC,
	WiFiNetworksData, SSID, BSSID, LocalIP4, LocalIP6, DeviceSystemVersion,
	Emulator, MultitaskingSupported, Timestamp, DeviceSystemName, ScreenSize,
	Languages, Compromised, OSID, AppKey, AdvertiserId,
}

var extendedAdditions = []ID{
	AgentBrand, AgentSignalStrengthCellular, AgentBootTime, AgentAppInfo,
	DnsIP, OSFontsHash, OSFontsNumber, ScreenColorDepth, TimeZone,
	AgentConnectionType, AgentSignalTypeCellular, RDPConnection,
	RDPConnectionDuration, RSAApplicationKey, SDKVersion,
}

var mixedAdditions = []ID{
	AgentAppInfo, AgentBootTime, AgentConnectionType, TimeZone, SDKVersion,
	RDPConnection, VpnConnection, ShareScreen, Debugger, AuthenticationInfo,
	AccessibilityServices, VoiceOver, ScreenshotCounter, PhoneCallState,
	BluetoothState, OtherAudioPlaying, AppProcStartTime, AppDurationStartTime,
	HoursSinceAirdroidInstall, HoursSinceAircastInstall, HoursSinceAirmirrorInstall,
	HoursSinceAnyDeskInstall, HoursSinceAPowerMirrorInstall, HoursSinceDiscordInstall,
	HoursSinceISLLightInstall, HoursSinceLogMeinInstall,
	HoursSinceAirdroidRemoteSupportInstall, HoursSinceZoomInstall,
	HoursSinceSBPaySInstall, HoursSinceSbpPaySInstall, HoursSinceSkypeInstall,
	LocaleInfo, FontInfo, UserInterfaceIdiom,
}

// coordinates are appended to any variant when coordinates are requested.
var coordinates = []ID{GeoLocationInfo, LocationHash}

// IDs returns the metric set of the variant in declaration order.
func (v Variant) IDs(withCoordinates bool) []ID {
	var ids []ID
	switch v {
	case VariantLegacy:
		ids = slices.Clone(legacySet)
	case VariantExtended:
		ids = slices.Concat(legacySet, extendedAdditions)
	case VariantMixed:
		ids = slices.Concat(legacySet, mixedAdditions)
	default:
		return nil
	}
	if withCoordinates {
		ids = append(ids, coordinates...)
	}
	out, _ := Normalize(ids)
	return out
}

// Defaults returns the baseline set used by active snapshots before the
// configured parameters are added.
func Defaults() []ID {
	return VariantLegacy.IDs(false)
}
