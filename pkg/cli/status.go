package cli

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/faultd/faultd/pkg/cli/internal/output"
)

// StatusOutput represents the JSON output format for status.
type StatusOutput struct {
	Running bool   `json:"running"`
	Status  string `json:"status,omitempty"`
	Version string `json:"version,omitempty"`
	Session string `json:"session,omitempty"`
	PID     int    `json:"pid,omitempty"`
	Uptime  string `json:"uptime,omitempty"`
	Faults  int    `json:"faults,omitempty"`
}

// RunStatus handles the status command.
func RunStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)

	addr := fs.String("addr", "", "Control API base URL (default: http://localhost:4270)")
	jsonOutput := fs.Bool("json", false, "Output in JSON format")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: faultd status [flags]

Show the status of the running faultd daemon.

Flags:
      --addr    Control API base URL (default: http://localhost:4270)
      --json    Output in JSON format

Examples:
  # Check daemon status
  faultd status

  # Output as JSON
  faultd status --json
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	client := NewClientFromFlag(*addr)
	status, err := client.Status()
	if err != nil {
		if *jsonOutput {
			return output.JSON(StatusOutput{Running: false})
		}
		fmt.Println("faultd is not running")
		return nil
	}

	uptime := (time.Duration(status.Uptime) * time.Second).String()
	if *jsonOutput {
		return output.JSON(StatusOutput{
			Running: true,
			Status:  status.Status,
			Version: status.Version,
			Session: status.Session,
			PID:     status.PID,
			Uptime:  uptime,
			Faults:  status.Faults,
		})
	}

	fmt.Println("faultd is running")
	w := output.Table()
	if status.Version != "" {
		fmt.Fprintf(w, "  Version:\t%s\n", status.Version)
	}
	fmt.Fprintf(w, "  Session:\t%s\n", status.Session)
	fmt.Fprintf(w, "  PID:\t%d\n", status.PID)
	fmt.Fprintf(w, "  Uptime:\t%s\n", uptime)
	fmt.Fprintf(w, "  Faults:\t%d in catalog\n", status.Faults)
	return w.Flush()
}
