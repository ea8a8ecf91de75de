package tools

import (
	"context"

	"github.com/atotto/clipboard"

	"github.com/deskautomate/engine/internal/accessibility"
	"github.com/deskautomate/engine/internal/element"
)

// pasteThreshold is the text length above which type_into_element prefers
// a clipboard paste over synthesized keystrokes, matching the teacher's
// preference for clipboard writes on long strings.
const pasteThreshold = 256

func usePaste(text string) bool {
	return len(text) > pasteThreshold
}

func (d *Dispatcher) typeViaPaste(ctx context.Context, elem *element.Element, text string, clearBefore bool) error {
	if clearBefore {
		if err := d.port.TypeText(ctx, elem, "", true); err != nil {
			return err
		}
	}

	prev, hadPrev := "", false

	if saved, err := clipboard.ReadAll(); err == nil {
		prev, hadPrev = saved, true
	}

	if err := clipboard.WriteAll(text); err != nil {
		return d.port.TypeText(ctx, elem, text, false)
	}

	if hadPrev {
		defer func() { _ = clipboard.WriteAll(prev) }()
	}

	if err := d.port.SetFocus(ctx, elem); err != nil {
		return err
	}

	return d.port.PressKey(ctx, "{Ctrl}v", false)
}

func focusedProcessID(ctx context.Context, port accessibility.Port) (int, error) {
	focused, err := port.FocusedElement(ctx)
	if err != nil {
		return 0, err
	}

	return focused.ProcessID(), nil
}
