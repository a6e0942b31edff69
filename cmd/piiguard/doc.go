// Package piiguard provides the command-line interface for the piiguard tool.
// It configures subcommands (scan, redact, anonymize, status, modes), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/varalys/piiguard/cmd/piiguard"
//	func main() { piiguard.Execute() }
package piiguard
