// Package logger provides comprehensive structured logging functionality for the engine,
// using the zap logging library with file rotation support to ensure reliable and efficient logging.
//
// This package implements a robust logging system that provides detailed insights into the
// engine's operation while maintaining high performance and minimal overhead. It serves as the
// foundation for debugging, monitoring, and auditing all aspects of the application.
package logger
