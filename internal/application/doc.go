// Package application wires the resolver, logger and configuration storage
// used by the command-line tool, keeping the main package focused on flag
// parsing and output.
package application
