package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faultd/faultd/pkg/cli/internal/output"
	"github.com/faultd/faultd/pkg/config"
)

// RunInit handles the init command for creating a starter config file.
func RunInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	force := fs.Bool("force", false, "Overwrite existing config file")
	outFile := fs.String("output", "faultd.yaml", "Output filename")
	fs.StringVar(outFile, "o", "faultd.yaml", "Output filename (shorthand)")
	format := fs.String("format", "", "Output format: yaml or json (default: inferred from filename)")

	fs.Usage = func() {
		fmt.Fprint(os.Stderr, `Usage: faultd init [flags]

Create a starter faultd configuration file with the default settings.

Flags:
      --force     Overwrite existing config file
  -o, --output    Output filename (default: faultd.yaml)
      --format    Output format: yaml or json (default: inferred from filename)

Examples:
  # Create default faultd.yaml
  faultd init

  # Create with custom filename
  faultd init -o fault-lab.yaml

  # Create JSON config
  faultd init --format json -o faultd.json

  # Overwrite existing config
  faultd init --force
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	outputFormat := strings.ToLower(*format)
	if outputFormat == "" {
		if strings.ToLower(filepath.Ext(*outFile)) == ".json" {
			outputFormat = "json"
		} else {
			outputFormat = "yaml"
		}
	}
	if outputFormat != "yaml" && outputFormat != "json" {
		return fmt.Errorf("invalid format: %s (must be yaml or json)", outputFormat)
	}

	if _, err := os.Stat(*outFile); err == nil {
		if !*force {
			return fmt.Errorf("file already exists: %s\n\nUse --force to overwrite", *outFile)
		}
		output.Warn("overwriting %s", *outFile)
	}

	cfg := config.DefaultConfig()

	if outputFormat == "json" {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to generate JSON: %w", err)
		}
		data = append(data, '\n')
		if err := os.WriteFile(*outFile, data, 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
	} else if err := config.Save(cfg, *outFile); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", *outFile)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  faultd serve --config %s\n", *outFile)
	fmt.Println("  faultd list")
	return nil
}
