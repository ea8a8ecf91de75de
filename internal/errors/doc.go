// Package errors provides domain-specific error types and utilities.
//
// This package implements a structured error handling system with error codes,
// wrapping, and context information. It follows Go 1.13+ error handling patterns
// with errors.Is and errors.As support.
package errors
