// Package cli implements the lockkeys command line.
package cli
