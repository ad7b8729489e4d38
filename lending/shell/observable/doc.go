// Package observable decorates command and query handlers with metrics, tracing and logging.
// The wrapped handlers stay free of any observability code.
package observable
