//go:build !linux && !darwin && !windows

package bincache

const magic = "CATBX001"
