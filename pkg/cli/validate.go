package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/faultd/faultd/internal/cliconfig"
	"github.com/faultd/faultd/pkg/config"
)

// RunValidate validates a faultd configuration file without starting the daemon.
func RunValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)

	configFile := fs.String("config", "", "Config file path")
	fs.StringVar(configFile, "f", "", "Config file path (shorthand)")
	verbose := fs.Bool("verbose", false, "Show a summary of the validated configuration")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: faultd validate [flags]

Validate a faultd configuration file without starting the daemon.

This command checks:
  - YAML/JSON syntax
  - Value ranges (ports, log levels, formats)
  - Control pipe path usability

Flags:
  -f, --config <path>    Config file path
                         If not specified, uses FAULTD_CONFIG or faultd.yaml
  --verbose              Show a summary of the validated configuration

Examples:
  # Validate config in current directory
  faultd validate

  # Validate a specific config file
  faultd validate -f ./faultd.yaml
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	path := *configFile
	if path == "" {
		path = cliconfig.GetConfigFromEnv()
	}
	if path == "" {
		path = "faultd.yaml"
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", path, err)
		return err
	}

	result := config.Validate(cfg)
	if !result.IsValid() {
		fmt.Println("Validation failed:")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e.Error())
		}
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}

	fmt.Println("Configuration is valid.")
	if *verbose {
		printConfigSummary(cfg)
	}
	return nil
}

func printConfigSummary(cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration Summary")
	fmt.Println("---------------------")
	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	fmt.Printf("Control API: %s:%d\n", host, cfg.Server.Port)
	if cfg.Control.Enabled {
		fmt.Printf("Control pipe: %s\n", cfg.Control.Path)
	} else {
		fmt.Println("Control pipe: disabled")
	}
	if cfg.Events.Enabled {
		fmt.Printf("Event stream: enabled (buffer %d)\n", cfg.Events.Buffer)
	} else {
		fmt.Println("Event stream: disabled")
	}
	fmt.Printf("Logging: %s %s\n", cfg.Logging.Level, cfg.Logging.Format)
	if cfg.Logging.CrashLog != "" {
		fmt.Printf("Crash log: %s\n", cfg.Logging.CrashLog)
	}
}
