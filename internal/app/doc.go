// Package app wires configuration, loading, searching and reporting for the
// nearest command.
package app
