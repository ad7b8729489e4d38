// Package searchbooks implements the Search Books and List All Books query use cases.
package searchbooks
