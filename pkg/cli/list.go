package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/faultd/faultd/pkg/cli/internal/output"
	"github.com/faultd/faultd/pkg/fault"
)

// RunList handles the list command.
func RunList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	addr := fs.String("addr", "", "Control API base URL (default: http://localhost:4270)")
	local := fs.Bool("local", false, "List the built-in catalog (no server needed)")
	jsonOutput := fs.Bool("json", false, "Output in JSON format")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: faultd list [flags]

List the fault catalog, one name per line, in declaration order.

Flags:
      --local   List the built-in catalog (no server needed)
      --addr    Control API base URL (default: http://localhost:4270)
      --json    Output in JSON format

Examples:
  # List faults from the running daemon
  faultd list

  # List the built-in catalog without a server
  faultd list --local

  # List from a remote daemon
  faultd list --addr http://remote:4270
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	var names []string
	if *local {
		names = fault.New().Names()
	} else {
		client := NewClientFromFlag(*addr)
		var err error
		names, err = client.ListFaults()
		if err != nil {
			return fmt.Errorf("%s", FormatConnectionError(err))
		}
	}

	if *jsonOutput {
		return output.JSON(struct {
			Faults []string `json:"faults"`
			Count  int      `json:"count"`
		}{Faults: names, Count: len(names)})
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
