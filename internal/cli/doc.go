// Package cli implements the command-line interface for closest-arcade.
//
// The cli package provides the Cobra-based commands run (the repeating check
// loop), check (a single cycle) and show (the persisted result), formats their
// output as text or JSON, and wires configuration, storage, notification
// channels and the optional status server together.
package cli
