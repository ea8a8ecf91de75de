package cli

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deskautomate/engine/internal/engine"
	derrors "github.com/deskautomate/engine/internal/errors"
	"github.com/deskautomate/engine/internal/recorder"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a workflow by observing mouse, keyboard and hotkey input",
}

var recordStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a recording session and stream events until interrupted",
	Long: `Start a recording session and print each recorded event as one JSON
object per line until interrupted (Ctrl+C) or until the session's configured
stop chord is pressed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := engine.New(configPath)
		if err != nil {
			return derrors.Wrap(err, derrors.CodeInvalidConfig, "starting engine")
		}
		defer e.Close()

		sessionCfg := recorder.DefaultConfig(e.Config().Recorder)

		session := e.NewRecordingSession(sessionCfg, recorder.NullInputSource{}, nil, nil)

		events, unsubscribe := session.Subscribe()
		defer unsubscribe()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := session.Start(ctx); err != nil {
			return derrors.Wrap(err, derrors.CodeInternal, "starting recording session")
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())

		for {
			select {
			case evt, ok := <-events:
				if !ok {
					return nil
				}

				if err := encoder.Encode(toJSON(evt)); err != nil {
					return derrors.Wrap(err, derrors.CodeSerializationFailed, "encoding recorded event")
				}
			case <-ctx.Done():
				session.Stop()

				return nil
			}
		}
	},
}

// recordedEvent is a JSON-friendly projection of recorder.Event: the
// Element field carries unexported state that does not marshal on its own.
type recordedEvent struct {
	Kind      recorder.EventKind `json:"kind"`
	Timestamp time.Time          `json:"timestamp"`
	Element   string             `json:"element,omitempty"`

	Point     string   `json:"point,omitempty"`
	Button    string   `json:"button,omitempty"`
	Key       string   `json:"key,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Text      string   `json:"text,omitempty"`

	TextInputCompleted *recorder.TextInputCompletion `json:"text_input_completed,omitempty"`
	ApplicationSwitch  *recorder.ApplicationSwitch   `json:"application_switch,omitempty"`
	DragDrop           *recorder.DragDrop            `json:"drag_drop,omitempty"`
	Hotkey             *recorder.Hotkey              `json:"hotkey,omitempty"`
	Dropped            int                           `json:"dropped,omitempty"`
}

func toJSON(evt recorder.Event) recordedEvent {
	out := recordedEvent{
		Kind:               evt.Kind,
		Timestamp:          evt.Timestamp,
		Button:             evt.Button,
		Key:                evt.Key,
		Modifiers:          evt.Modifiers,
		Text:               evt.Text,
		TextInputCompleted: evt.TextInputCompleted,
		ApplicationSwitch:  evt.ApplicationSwitch,
		DragDrop:           evt.DragDrop,
		Hotkey:             evt.Hotkey,
		Dropped:            evt.Dropped,
	}

	if evt.Point.X != 0 || evt.Point.Y != 0 {
		out.Point = evt.Point.String()
	}

	if evt.Element != nil {
		out.Element = string(evt.Element.Role()) + " " + evt.Element.Name()
	}

	return out
}

func init() {
	recordCmd.AddCommand(recordStartCmd)
	rootCmd.AddCommand(recordCmd)
}
