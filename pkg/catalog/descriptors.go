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

// declared lists every metric in declaration order. Ordinals are derived
// from the position in this slice, so entries must only ever be appended.
var declared = []Descriptor{
	{ID: DeviceName, Family: FamilyIdentity, Kind: KindScalar, Description: "User-assigned device name"},
	{ID: HardwareID, Family: FamilyIdentity, Kind: KindScalar, Description: "Hardware identifier"},
	{ID: DeviceModel, Family: FamilyIdentity, Kind: KindScalar, Description: "Device model"},
	{ID: TimeZoneDSTOffset, Family: FamilyTime, Kind: KindScalar, Description: "Daylight saving offset in seconds"},
	{ID: MNC, Family: FamilyNetwork, Kind: KindScalar, Description: "Cellular mobile network code"},
	{ID: MCC, Family: FamilyNetwork, Kind: KindScalar, Description: "Cellular mobile country code"},
	{ID: WiFiNetworksData, Family: FamilyNetwork, Kind: KindList, Description: "Visible Wi-Fi networks"},
	{ID: SSID, Family: FamilyNetwork, Kind: KindScalar, Description: "Connected Wi-Fi SSID"},
	{ID: BSSID, Family: FamilyNetwork, Kind: KindScalar, Description: "Connected Wi-Fi BSSID"},
	{ID: LocalIP4, Family: FamilyNetwork, Kind: KindScalar, Description: "Local IPv4 address"},
	{ID: LocalIP6, Family: FamilyNetwork, Kind: KindScalar, Description: "Local IPv6 address"},
	{ID: DeviceSystemVersion, Family: FamilyIdentity, Kind: KindScalar, Description: "Operating system version"},
	{ID: Emulator, Family: FamilySecurity, Kind: KindScalar, Description: "Running inside an emulator or virtual machine"},
	{ID: MultitaskingSupported, Family: FamilyMedia, Kind: KindScalar, Description: "Multitasking support"},
	{ID: Timestamp, Family: FamilyTime, Kind: KindScalar, Description: "Collection timestamp in milliseconds"},
	{ID: DeviceSystemName, Family: FamilyIdentity, Kind: KindScalar, Description: "Operating system name"},
	{ID: ScreenSize, Family: FamilyScreen, Kind: KindScalar, Description: "Screen resolution"},
	{ID: Languages, Family: FamilyLocale, Kind: KindScalar, Description: "Language and region"},
	{ID: Compromised, Family: FamilySecurity, Kind: KindScalar, Description: "Jailbreak or root detected"},
	{ID: OSID, Family: FamilyIdentity, Kind: KindScalar, Description: "Stable operating system installation identifier"},
	{ID: AppKey, Family: FamilyKeys, Kind: KindScalar, Description: "Application key"},
	{ID: AdvertiserId, Family: FamilyKeys, Kind: KindScalar, Gate: GateAdvertiserID, Description: "Advertiser identifier"},
	{ID: AgentBrand, Family: FamilyIdentity, Kind: KindScalar, Description: "Device brand"},
	{ID: AgentSignalStrengthCellular, Family: FamilyNetwork, Kind: KindScalar, Description: "Cellular signal strength"},
	{ID: AgentBootTime, Family: FamilyTime, Kind: KindScalar, Description: "Device boot time"},
	{ID: AgentAppInfo, Family: FamilyKeys, Kind: KindRecord, Description: "Application name, version and architecture"},
	{ID: DnsIP, Family: FamilyNetwork, Kind: KindList, Description: "DNS server addresses"},
	{ID: OSFontsHash, Family: FamilyFonts, Kind: KindScalar, Description: "Hash of all system fonts"},
	{ID: OSFontsNumber, Family: FamilyFonts, Kind: KindScalar, Description: "Number of system fonts"},
	{ID: ScreenColorDepth, Family: FamilyScreen, Kind: KindScalar, Description: "Screen color depth"},
	{ID: TimeZone, Family: FamilyTime, Kind: KindScalar, Description: "Time zone name"},
	{ID: AgentConnectionType, Family: FamilyNetwork, Kind: KindScalar, Description: "Network connection type"},
	{ID: AgentSignalTypeCellular, Family: FamilyNetwork, Kind: KindScalar, Description: "Cellular radio technology"},
	{ID: RDPConnection, Family: FamilySecurity, Kind: KindScalar, Description: "Remote desktop session active"},
	{ID: RDPConnectionDuration, Family: FamilySecurity, Kind: KindScalar, Description: "Remote desktop session duration in seconds"},
	{ID: LocationHash, Family: FamilyGeolocation, Kind: KindScalar, Capability: CapabilityLocation, Description: "Hash of the current location"},
	{ID: RSAApplicationKey, Family: FamilyKeys, Kind: KindScalar, Gate: GateRSAAppKey, Description: "RSA wrapped application key"},
	{ID: GeoLocationInfo, Family: FamilyGeolocation, Kind: KindRecord, Capability: CapabilityLocation, Description: "Geolocation composite"},
	{ID: Latitude, Family: FamilyGeolocation, Kind: KindScalar, Parent: GeoLocationInfo, Capability: CapabilityLocation, Description: "Latitude"},
	{ID: Longitude, Family: FamilyGeolocation, Kind: KindScalar, Parent: GeoLocationInfo, Capability: CapabilityLocation, Description: "Longitude"},
	{ID: Altitude, Family: FamilyGeolocation, Kind: KindScalar, Parent: GeoLocationInfo, Capability: CapabilityLocation, Description: "Altitude"},
	{ID: HorizontalAccuracy, Family: FamilyGeolocation, Kind: KindScalar, Parent: GeoLocationInfo, Capability: CapabilityLocation, Description: "Horizontal accuracy"},
	{ID: AltitudeAccuracy, Family: FamilyGeolocation, Kind: KindScalar, Parent: GeoLocationInfo, Capability: CapabilityLocation, Description: "Altitude accuracy"},
	{ID: GPSTimestamp, Family: FamilyGeolocation, Kind: KindScalar, Parent: GeoLocationInfo, Capability: CapabilityLocation, Description: "Location fix timestamp"},
	{ID: GPSStatus, Family: FamilyGeolocation, Kind: KindScalar, Parent: GeoLocationInfo, Capability: CapabilityLocation, Description: "Location service status"},
	{ID: SDKVersion, Family: FamilyKeys, Kind: KindScalar, Description: "Fingerprint library version"},
	{ID: PhoneCallState, Family: FamilyTelephony, Kind: KindScalar, Description: "Phone call state"},
	{ID: PhoneCallDirection, Family: FamilyTelephony, Kind: KindScalar, Description: "Phone call direction"},
	{ID: PhoneCallDuration, Family: FamilyTelephony, Kind: KindScalar, Description: "Phone call duration"},
	{ID: PhoneCallType, Family: FamilyTelephony, Kind: KindScalar, Description: "Phone call type"},
	{ID: PhoneCallActDur, Family: FamilyTelephony, Kind: KindScalar, Description: "Active call duration"},
	{ID: AccessibilityServices, Family: FamilyAccessibility, Kind: KindList, Description: "Enabled accessibility services"},
	{ID: VoiceOver, Family: FamilyAccessibility, Kind: KindScalar, Description: "Screen reader active"},
	{ID: AuthenticationInfo, Family: FamilyAuthentication, Kind: KindRecord, Capability: CapabilityBiometric, Gate: GateBiometric, Description: "Authentication composite"},
	{ID: DeviceUnlocked, Family: FamilyAuthentication, Kind: KindScalar, Parent: AuthenticationInfo, Capability: CapabilityBiometric, Gate: GateBiometric, Description: "Device unlocked"},
	{ID: BioAuthFirstMethod, Family: FamilyAuthentication, Kind: KindScalar, Parent: AuthenticationInfo, Capability: CapabilityBiometric, Gate: GateBiometric, Description: "First biometric method"},
	{ID: HoursSinceAuthDbUpdateDetected, Family: FamilyAuthentication, Kind: KindScalar, Parent: AuthenticationInfo, Capability: CapabilityBiometric, Gate: GateBiometric, Description: "Hours since the biometric database changed"},
	{ID: IsAuthDataKeychainStored, Family: FamilyAuthentication, Kind: KindScalar, Parent: AuthenticationInfo, Capability: CapabilityBiometric, Gate: GateBiometric, Description: "Credentials stored in the keychain"},
	{ID: ShareScreen, Family: FamilyScreen, Kind: KindScalar, Description: "Screen shared to another display"},
	{ID: ShareScreenInfo, Family: FamilyScreen, Kind: KindRecord, Description: "Screen sharing composite"},
	{ID: ConnectedDevicePortId, Family: FamilyScreen, Kind: KindScalar, Parent: ShareScreenInfo, Description: "Connected display port identifier"},
	{ID: ConnectedDeviceName, Family: FamilyScreen, Kind: KindScalar, Parent: ShareScreenInfo, Description: "Connected display name"},
	{ID: BluetoothState, Family: FamilyBluetooth, Kind: KindScalar, Capability: CapabilityBluetooth, Gate: GateBluetooth, Description: "Bluetooth state"},
	{ID: BluetoothDevices, Family: FamilyBluetooth, Kind: KindList, Capability: CapabilityBluetooth, Gate: GateBluetooth, Description: "Connected bluetooth devices"},
	{ID: VpnConnection, Family: FamilyNetwork, Kind: KindScalar, Description: "VPN connection active"},
	{ID: OtherAudioPlaying, Family: FamilyMedia, Kind: KindScalar, Description: "Other audio playing"},
	{ID: ScreenshotCounter, Family: FamilyScreen, Kind: KindScalar, Description: "Screenshots taken"},
	{ID: HoursSinceAirdroidInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since Airdroid was installed"},
	{ID: HoursSinceAircastInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since Aircast was installed"},
	{ID: HoursSinceAirmirrorInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since AirMirror was installed"},
	{ID: HoursSinceAnyDeskInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since AnyDesk was installed"},
	{ID: HoursSinceAPowerMirrorInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since ApowerMirror was installed"},
	{ID: HoursSinceDiscordInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since Discord was installed"},
	{ID: HoursSinceISLLightInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since ISL Light was installed"},
	{ID: HoursSinceLogMeinInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since LogMeIn was installed"},
	{ID: HoursSinceAirdroidRemoteSupportInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since AirDroid Remote Support was installed"},
	{ID: HoursSinceZoomInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since Zoom was installed"},
	{ID: HoursSinceSBPaySInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since SB Pay was installed"},
	{ID: HoursSinceSbpPaySInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since SBP Pay was installed"},
	{ID: HoursSinceSkypeInstall, Family: FamilyInstalledApps, Kind: KindScalar, Description: "Hours since Skype was installed"},
	{ID: AppProcStartTime, Family: FamilyTime, Kind: KindScalar, Description: "Application process start time"},
	{ID: AppDurationStartTime, Family: FamilyTime, Kind: KindScalar, Description: "Time between process start and facade initialization"},
	{ID: Debugger, Family: FamilySecurity, Kind: KindScalar, Description: "Process is being debugged"},
	{ID: FontInfo, Family: FamilyFonts, Kind: KindRecord, Description: "Font composite"},
	{ID: ButtonFontSize, Family: FamilyFonts, Kind: KindScalar, Parent: FontInfo, Description: "Default button font size"},
	{ID: FontFamilyNames, Family: FamilyFonts, Kind: KindList, Parent: FontInfo, Description: "Font family names"},
	{ID: FontNamesForFamilyName, Family: FamilyFonts, Kind: KindList, Parent: FontInfo, Description: "Font names of the default family"},
	{ID: LabelFontSize, Family: FamilyFonts, Kind: KindScalar, Parent: FontInfo, Description: "Default label font size"},
	{ID: SmallSystemFontSize, Family: FamilyFonts, Kind: KindScalar, Parent: FontInfo, Description: "Small system font size"},
	{ID: SystemFont, Family: FamilyFonts, Kind: KindScalar, Parent: FontInfo, Description: "System font"},
	{ID: SystemFontSize, Family: FamilyFonts, Kind: KindScalar, Parent: FontInfo, Description: "System font size"},
	{ID: LocaleInfo, Family: FamilyLocale, Kind: KindRecord, Description: "Locale composite"},
	{ID: AvailableLocaleIdentifiers, Family: FamilyLocale, Kind: KindList, Parent: LocaleInfo, Description: "Available locale identifiers"},
	{ID: PreferredLanguages, Family: FamilyLocale, Kind: KindList, Parent: LocaleInfo, Description: "Preferred languages"},
	{ID: SystemLocale, Family: FamilyLocale, Kind: KindScalar, Parent: LocaleInfo, Description: "System locale"},
	{ID: UserInterfaceIdiom, Family: FamilyIdentity, Kind: KindScalar, Description: "User interface idiom"},
}
