// Package config loads, validates and hot-reloads the engine's TOML
// configuration file, and exposes a process-wide snapshot via Global.
package config
