// Package utils provides small shared helpers for the globescope pipeline:
// vector similarity math and bounded-concurrency primitives.
package utils
