// Package tools implements the tool dispatcher (C7): it maps a workflow
// step's tool_name to a single accessibility (C1) or locator (C3)
// operation and returns the uniform result envelope the executor (C6)
// records per step.
package tools
