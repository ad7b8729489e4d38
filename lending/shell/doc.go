// Package shell contains the infrastructure concerns shared by all feature slices:
// mapping between persisted records and domain values, retry on optimistic concurrency
// conflicts, handler results, error categories, event payloads and observability helpers.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' or 'adapter' layer.
package shell
