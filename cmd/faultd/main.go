// faultd CLI - Command-line interface for the faultd fault injection daemon
package main

import (
	"fmt"
	"os"

	"github.com/faultd/faultd/pkg/cli"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Command represents a registered CLI command.
type Command struct {
	Name     string
	Short    string
	Category string
	Run      func(args []string) error
}

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	ordered  []*Command
}

func newRegistry() *Registry {
	return &Registry{commands: make(map[string]*Command)}
}

func (r *Registry) register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	r.ordered = append(r.ordered, cmd)
}

func (r *Registry) lookup(name string) (*Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

func (r *Registry) isCommand(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// buildRegistry creates the command registry with all CLI commands.
func buildRegistry() *Registry {
	reg := newRegistry()

	// Core
	reg.register(&Command{Name: "serve", Short: "Start the fault injection daemon (default command)", Category: "Core", Run: cli.RunServe})
	reg.register(&Command{Name: "list", Short: "List the fault catalog", Category: "Core", Run: cli.RunList})
	reg.register(&Command{Name: "trigger", Short: "Trigger a fault in the running daemon", Category: "Core", Run: cli.RunTrigger})
	reg.register(&Command{Name: "status", Short: "Show status of the running daemon", Category: "Core", Run: cli.RunStatus})

	// Configuration
	reg.register(&Command{Name: "init", Short: "Create a starter config file", Category: "Configuration", Run: cli.RunInit})
	reg.register(&Command{Name: "validate", Short: "Validate a config file without starting the daemon", Category: "Configuration", Run: cli.RunValidate})

	// Utilities
	reg.register(&Command{
		Name: "version", Short: "Show version information", Category: "Utilities",
		Run: func(args []string) error {
			return cli.RunVersion(cli.BuildInfo{Version: Version, Commit: Commit, BuildDate: BuildDate}, args)
		},
	})

	return reg
}

func main() {
	cli.Version = Version
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	reg := buildRegistry()

	// Determine command and args
	command := ""
	var cmdArgs []string

	switch {
	case len(args) == 0:
		// No args at all, run serve
		command = "serve"
		cmdArgs = []string{}
	case args[0] == "" || args[0][0] == '-':
		first := args[0]
		// Flag passed directly, handle global flags or hand them to serve
		switch first {
		case "--help", "-h":
			printUsage(reg)
			return nil
		case "--version", "-v":
			return cli.RunVersion(cli.BuildInfo{
				Version:   Version,
				Commit:    Commit,
				BuildDate: BuildDate,
			}, nil)
		default:
			command = "serve"
			cmdArgs = args
		}
	case reg.isCommand(args[0]):
		command = args[0]
		cmdArgs = args[1:]
	default:
		return fmt.Errorf("unknown command: %s\n\nRun 'faultd --help' for usage", args[0])
	}

	cmd, ok := reg.lookup(command)
	if !ok {
		return fmt.Errorf("unknown command: %s\n\nRun 'faultd --help' for usage", command)
	}
	return cmd.Run(cmdArgs)
}

func printUsage(reg *Registry) {
	fmt.Print("faultd - Fault injection daemon for crash and hang testing\n\n")
	fmt.Print("Usage:\n")
	fmt.Print("  faultd                         Start the daemon with defaults\n")
	fmt.Print("  faultd <command> [flags]       Run a specific command\n")
	fmt.Print("  faultd --help                  Show this help message\n\n")

	// Group commands by category in display order.
	categories := []string{"Core", "Configuration", "Utilities"}

	groups := make(map[string][]*Command)
	for _, cmd := range reg.ordered {
		groups[cmd.Category] = append(groups[cmd.Category], cmd)
	}

	for _, cat := range categories {
		cmds := groups[cat]
		if len(cmds) == 0 {
			continue
		}
		fmt.Printf("%s:\n", cat)
		for _, cmd := range cmds {
			fmt.Printf("  %-12s %s\n", cmd.Name, cmd.Short)
		}
		fmt.Println()
	}

	fmt.Print(`Global Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Examples:
  # Create a starter config and start the daemon
  faultd init
  faultd serve --config faultd.yaml

  # List the fault catalog
  faultd list

  # Trigger a fault by name (this kills the daemon)
  faultd trigger EXCEPTION

  # Trigger through the control pipe instead
  echo PANIC > /tmp/faultd.ctl

  # Check the daemon status
  faultd status

Run 'faultd <command> --help' for more information on a command.
`)
}
