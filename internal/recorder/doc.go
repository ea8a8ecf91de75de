// Package recorder implements the recorder core (C8) and semantic
// aggregator (C9): it captures raw mouse/keyboard/clipboard input during a
// recording session, attaches best-effort UI element context, derives
// semantic events (text-input completion, application switches, drag-drop,
// hotkey chords), and fans both out over a single-producer/multi-consumer
// broadcast.
package recorder
