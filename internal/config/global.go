package config

import "sync/atomic"

var global atomic.Pointer[Config]

// SetGlobal installs cfg as the process-wide configuration snapshot.
func SetGlobal(cfg *Config) {
	global.Store(cfg)
}

// Global returns the process-wide configuration snapshot, or nil if none has
// been installed yet.
func Global() *Config {
	return global.Load()
}
