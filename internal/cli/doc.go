// Package cli implements the describe-gen commands.
package cli
