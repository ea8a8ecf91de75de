// Package engine wires together the platform accessibility facade (C1),
// locator resolver (C3), output parser host (C5), sequence executor (C6),
// tool dispatcher (C7) and recorder (C8/C9) into a single running instance,
// and owns their construction order, health check and graceful shutdown.
// It is adapted from the teacher's internal/app: same lifecycle shape
// (New/Close, a config service, a shared logger), new wiring.
package engine
