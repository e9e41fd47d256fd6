//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// Nothing here is compiled into the binaries. mockgen is imported so that
// `go generate ./...` resolves the same version as the one in go.mod.
package sng_lab

import (
	_ "go.uber.org/mock/mockgen"
)
