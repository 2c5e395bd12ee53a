//go:build darwin

package bincache

const magic = "CATBM001"
