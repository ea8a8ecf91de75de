// Package hotkeys registers and dispatches global keyboard shortcuts. A
// recording session uses it to report the chords in its hotkey table as
// hotkey events.
//
// Manager matches key chords delivered by a Source against registered
// callbacks. Source is the seam for a platform-specific global hotkey
// binding (Carbon/Cocoa on macOS, RegisterHotKey on Windows, a global X11
// grab on Linux); NullSource is the cross-platform default when no such
// binding is wired in.
package hotkeys
