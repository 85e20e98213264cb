// Package main implements the tabkit binary, a thin wrapper around the
// internal cli package.
package main

import "tabkit/internal/cli"

func main() {
	cli.DoCLI()
}
