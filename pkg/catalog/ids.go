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

// Metric identifiers in declaration order. The string value is the canonical
// key used in every serialized fingerprint. Identifiers are append-only: new
// metrics go at the end of the list and existing values are never renamed.
const (
	DeviceName                             ID = "DeviceName"
	HardwareID                             ID = "HardwareID"
	DeviceModel                            ID = "DeviceModel"
	TimeZoneDSTOffset                      ID = "TimeZoneDSTOffset"
	MNC                                    ID = "MNC"
	MCC                                    ID = "MCC"
	WiFiNetworksData                       ID = "WiFiNetworksData"
	SSID                                   ID = "SSID"
	BSSID                                  ID = "BSSID"
	LocalIP4                               ID = "LocalIP4"
	LocalIP6                               ID = "LocalIP6"
	DeviceSystemVersion                    ID = "DeviceSystemVersion"
	Emulator                               ID = "Emulator"
	MultitaskingSupported                  ID = "MultitaskingSupported"
	Timestamp                              ID = "TIMESTAMP"
	DeviceSystemName                       ID = "DeviceSystemName"
	ScreenSize                             ID = "ScreenSize"
	Languages                              ID = "Languages"
	Compromised                            ID = "Compromised"
	OSID                                   ID = "OSID"
	AppKey                                 ID = "AppKey"
	AdvertiserId                           ID = "AdvertiserId"
	AgentBrand                             ID = "AgentBrand"
	AgentSignalStrengthCellular            ID = "AgentSignalStrengthCellular"
	AgentBootTime                          ID = "AgentBootTime"
	AgentAppInfo                           ID = "AgentAppInfo"
	DnsIP                                  ID = "DnsIP"
	OSFontsHash                            ID = "OSFontsHash"
	OSFontsNumber                          ID = "OSFontsNumber"
	ScreenColorDepth                       ID = "ScreenColorDepth"
	TimeZone                               ID = "TimeZone"
	AgentConnectionType                    ID = "AgentConnectionType"
	AgentSignalTypeCellular                ID = "AgentSignalTypeCellular"
	RDPConnection                          ID = "RDPConnection"
	RDPConnectionDuration                  ID = "RDPConnectionDuration"
	LocationHash                           ID = "LocationHash"
	RSAApplicationKey                      ID = "RSA_ApplicationKey"
	GeoLocationInfo                        ID = "GeoLocationInfo"
	Latitude                               ID = "Latitude"
	Longitude                              ID = "Longitude"
	Altitude                               ID = "Altitude"
	HorizontalAccuracy                     ID = "HorizontalAccuracy"
	AltitudeAccuracy                       ID = "AltitudeAccuracy"
	GPSTimestamp                           ID = "GPSTimestamp"
	GPSStatus                              ID = "GPSStatus"
	SDKVersion                             ID = "SDKVersion"
	PhoneCallState                         ID = "PhoneCallState"
	PhoneCallDirection                     ID = "PhoneCallDirection"
	PhoneCallDuration                      ID = "PhoneCallDuration"
	PhoneCallType                          ID = "PhoneCallType"
	PhoneCallActDur                        ID = "PhoneCallActDur"
	AccessibilityServices                  ID = "AccessibilityServices"
	VoiceOver                              ID = "VoiceOver"
	AuthenticationInfo                     ID = "AuthenticationInfo"
	DeviceUnlocked                         ID = "DeviceUnlocked"
	BioAuthFirstMethod                     ID = "BioAuthFirstMethod"
	HoursSinceAuthDbUpdateDetected         ID = "HoursSinceAuthDbUpdateDetected"
	IsAuthDataKeychainStored               ID = "IsAuthDataKeychainStored"
	ShareScreen                            ID = "ShareScreen"
	ShareScreenInfo                        ID = "ShareScreenInfo"
	ConnectedDevicePortId                  ID = "ConnectedDevicePortId"
	ConnectedDeviceName                    ID = "ConnectedDeviceName"
	BluetoothState                         ID = "BluetoothState"
	BluetoothDevices                       ID = "BluetoothDevices"
	VpnConnection                          ID = "VpnConnection"
	OtherAudioPlaying                      ID = "OtherAudioPlaying"
	ScreenshotCounter                      ID = "ScreenshotCounter"
	HoursSinceAirdroidInstall              ID = "HoursSinceAirdroidInstall"
	HoursSinceAircastInstall               ID = "HoursSinceAircastInstall"
	HoursSinceAirmirrorInstall             ID = "HoursSinceAirmirrorInstall"
	HoursSinceAnyDeskInstall               ID = "HoursSinceAnyDeskInstall"
	HoursSinceAPowerMirrorInstall          ID = "HoursSinceAPowerMirrorInstall"
	HoursSinceDiscordInstall               ID = "HoursSinceDiscordInstall"
	HoursSinceISLLightInstall              ID = "HoursSinceISLLightInstall"
	HoursSinceLogMeinInstall               ID = "HoursSinceLogMeinInstall"
	HoursSinceAirdroidRemoteSupportInstall ID = "HoursSinceAirdroidRemoteSupportInstall"
	HoursSinceZoomInstall                  ID = "HoursSinceZoomInstall"
	HoursSinceSBPaySInstall                ID = "HoursSinceSBPaySInstall"
	HoursSinceSbpPaySInstall               ID = "HoursSinceSbpPaySInstall"
	HoursSinceSkypeInstall                 ID = "HoursSinceSkypeInstall"
	AppProcStartTime                       ID = "AppProcStartTime"
	AppDurationStartTime                   ID = "AppDurationStartTime"
	Debugger                               ID = "Debugger"
	FontInfo                               ID = "FontInfo"
	ButtonFontSize                         ID = "ButtonFontSize"
	FontFamilyNames                        ID = "FontFamilyNames"
	FontNamesForFamilyName                 ID = "FontNamesForFamilyName"
	LabelFontSize                          ID = "LabelFontSize"
	SmallSystemFontSize                    ID = "SmallSystemFontSize"
	SystemFont                             ID = "SystemFont"
	SystemFontSize                         ID = "SystemFontSize"
	LocaleInfo                             ID = "LocaleInfo"
	AvailableLocaleIdentifiers             ID = "AvailableLocaleIdentifiers"
	PreferredLanguages                     ID = "PreferredLanguages"
	SystemLocale                           ID = "SystemLocale"
	UserInterfaceIdiom                     ID = "UserInterfaceIdiom"

	// Empty is the sentinel for "no metric requested". It is never collected.
	Empty ID = "Empty"
)
