// Package config loads KEY=VALUE configuration files with environment
// overrides for the nearest command.
package config
