package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/faultd/faultd/pkg/cli/internal/output"
	"github.com/faultd/faultd/pkg/fault"
)

// RunTrigger handles the trigger command.
func RunTrigger(args []string) error {
	fs := flag.NewFlagSet("trigger", flag.ContinueOnError)

	addr := fs.String("addr", "", "Control API base URL (default: http://localhost:4270)")
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	fs.BoolVar(yes, "y", false, "Skip the confirmation prompt (shorthand)")
	jsonOutput := fs.Bool("json", false, "Output in JSON format")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: faultd trigger [flags] <name>

Trigger a fault in the running daemon by name. Most faults kill the
daemon process, so the connection usually drops instead of returning
a response. An unrecognized name is a silent no-op on the daemon side.

Flags:
  -y, --yes     Skip the confirmation prompt
      --addr    Control API base URL (default: http://localhost:4270)
      --json    Output in JSON format

Examples:
  # Crash the daemon with a nil dereference
  faultd trigger EXCEPTION

  # Skip the prompt (for scripts)
  faultd trigger --yes PANIC

  # Harmless round trip
  faultd trigger NONE
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("trigger requires exactly one fault name")
	}
	name := fs.Arg(0)

	// Only prompt when the payload names a fault that would actually
	// bring the daemon down. NONE and unknown names go straight through.
	kind := fault.New().Parse(name)
	if kind != fault.KindNone && !*yes {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Trigger %s? This will likely kill the daemon.", kind)).
					Affirmative("Trigger").
					Negative("Cancel").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	client := NewClientFromFlag(*addr)

	// Check the daemon is reachable before the trigger, so a dropped
	// connection afterwards can be read as the fault taking effect
	// rather than the daemon never having been up.
	if kind != fault.KindNone {
		if err := client.Health(); err != nil {
			return fmt.Errorf("%s", FormatConnectionError(err))
		}
	}

	result, err := client.Trigger(name)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsConnectionError() && kind != fault.KindNone {
			// The expected outcome: the payload was sent and the daemon
			// died before it could answer.
			if *jsonOutput {
				return output.JSON(struct {
					Kind      string `json:"kind"`
					Responded bool   `json:"responded"`
				}{Kind: kind.String(), Responded: false})
			}
			fmt.Printf("Triggered %s; no response from daemon (expected)\n", kind)
			return nil
		}
		return fmt.Errorf("%s", FormatConnectionError(err))
	}

	if *jsonOutput {
		return output.JSON(result)
	}
	fmt.Printf("Triggered %s (id %s)\n", result.Kind, result.ID)
	return nil
}
