// Package config loads the runtime configuration with viper and builds the infrastructure it describes:
// postgres connection pools, OpenTelemetry providers and the slog logger.
//
// Precedence, lowest first: defaults, config file, LENDING_ environment variables, bound flags.
package config
