//go:build windows

package bincache

const magic = "CATBW001"
