// Package cli implements the faultd command-line interface.
//
// Each command is a RunX function taking raw args, registered by
// cmd/faultd. Most commands parse their own flag.FlagSet; the serve
// command is built on cobra because of its larger flag surface.
//
// Commands that talk to a running daemon use ControlClient, which
// resolves the endpoint from --addr, FAULTD_ADDR, or the default port,
// in that order.
package cli
