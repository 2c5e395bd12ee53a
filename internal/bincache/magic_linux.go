//go:build linux

package bincache

// magic is a platform tag, not a format version alone: a cache built on
// one OS is rejected outright on another rather than loaded and fed
// platform-specific paths it can't use. See spec §9's open question on
// this choice.
const magic = "CATBL001"
