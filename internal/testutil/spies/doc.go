// Package spies provides test doubles that record what the code under test logged,
// measured, traced and published.
package spies
