// Package errors provides foundational, type-safe error primitives used across docsite.
//
// This package contains classified error types and helpers for robust error handling,
// including a fluent builder API for constructing ClassifiedError values with context.
//
// Key features:
//   - ErrorCategory: Broad error classification (config, filesystem, render, export, git, etc.)
//   - ErrorSeverity: Impact level (fatal, error, warning, info)
//   - RetryStrategy: Retry behavior (never, immediate, backoff, user action)
//   - ClassifiedError: Structured error with category, severity, and context
//   - ErrorBuilder: Fluent API for creating classified errors
//   - CLIErrorAdapter: exit codes and user-facing messages for the command line
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryFileSystem, "content walk failed").
//		WithContext("root", contentRoot).
//		WithCause(originalErr).
//		Build()
package errors
