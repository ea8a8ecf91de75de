// Command engine is the command-line entry point for the desktop
// automation engine.
package main

import "github.com/deskautomate/engine/internal/cli"

func main() {
	cli.Execute()
}
