package cli

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/faultd/faultd/internal/cliconfig"
	"github.com/faultd/faultd/pkg/config"
	"github.com/faultd/faultd/pkg/control"
	"github.com/faultd/faultd/pkg/ctlfile"
	"github.com/faultd/faultd/pkg/fault"
	"github.com/faultd/faultd/pkg/logging"
	"github.com/faultd/faultd/pkg/metrics"
)

// Version is injected by cmd/faultd at startup.
var Version = "dev"

// serveFlags holds all flag values for the serve command.
type serveFlags struct {
	configFile  string
	port        int
	host        string
	controlPath string
	noControl   bool
	noEvents    bool
	eventBuffer int
	logLevel    string
	logFormat   string
	crashLog    string
}

// serveFlagVals is the package-level instance bound to cobra flags.
var serveFlagVals serveFlags

// serveCmd is the daemon entrypoint. It stays in the foreground until
// a signal arrives or a triggered fault takes the process down.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the fault injection daemon (foreground)",
	Long: `Start the faultd daemon.

The daemon exposes its fault catalog on two surfaces:

1. HTTP control API: list the catalog, trigger faults, watch trigger
   intents over WebSocket, scrape Prometheus metrics.
2. Control pipe: a named pipe that accepts fault names, one per line,
   with a sibling listing file next to it.

Triggering a fault is destructive. The daemon logs the intent before
injecting, because for most fault kinds it will not get another chance.`,
	Example: `  # Start with defaults
  faultd serve

  # Start with a config file on a custom port
  faultd serve --config faultd.yaml --port 3000

  # Keep a synchronous crash log of trigger intents
  faultd serve --crash-log /var/log/faultd-crash.log

  # HTTP only, no control pipe
  faultd serve --no-control`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServeWithFlags(cmd, &serveFlagVals)
	},
}

func init() {
	f := &serveFlagVals

	serveCmd.Flags().StringVarP(&f.configFile, "config", "c", "", "Path to configuration file")
	serveCmd.Flags().IntVarP(&f.port, "port", "p", config.DefaultPort, "Control API port")
	serveCmd.Flags().StringVar(&f.host, "host", "", "Interface to bind (default: all interfaces)")
	serveCmd.Flags().StringVar(&f.controlPath, "control-path", config.DefaultControlPath, "Control pipe path")
	serveCmd.Flags().BoolVar(&f.noControl, "no-control", false, "Disable the control pipe")
	serveCmd.Flags().BoolVar(&f.noEvents, "no-events", false, "Disable the WebSocket event stream")
	serveCmd.Flags().IntVar(&f.eventBuffer, "event-buffer", config.DefaultEventBuffer, "Per-subscriber event buffer")
	serveCmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	serveCmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
	serveCmd.Flags().StringVar(&f.crashLog, "crash-log", "", "Tee intent records to a synchronous crash log file")
}

// RunServe handles the serve command.
func RunServe(args []string) error {
	serveCmd.SetArgs(args)
	return serveCmd.Execute()
}

// buildServeConfig loads the configuration and applies flag overrides.
// changed reports whether a flag was set explicitly on the command line.
func buildServeConfig(f *serveFlags, changed func(string) bool) (*config.Config, error) {
	path := f.configFile
	if path == "" {
		path = cliconfig.GetConfigFromEnv()
	}

	var cfg *config.Config
	if path != "" {
		var err error
		cfg, err = config.LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	// Flags beat the file.
	if changed("port") {
		cfg.Server.Port = f.port
	}
	if changed("host") {
		cfg.Server.Host = f.host
	}
	if changed("control-path") {
		cfg.Control.Path = f.controlPath
	}
	if changed("no-control") && f.noControl {
		cfg.Control.Enabled = false
	}
	if changed("no-events") && f.noEvents {
		cfg.Events.Enabled = false
	}
	if changed("event-buffer") {
		cfg.Events.Buffer = f.eventBuffer
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	} else if cliconfig.GetVerboseFromEnv() {
		cfg.Logging.Level = "debug"
	}
	if changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if changed("crash-log") {
		cfg.Logging.CrashLog = f.crashLog
	}

	if result := config.Validate(cfg); !result.IsValid() {
		return nil, fmt.Errorf("invalid configuration: %s", result.Error())
	}
	return cfg, nil
}

// buildLogger constructs the daemon logger, teeing intent records into a
// synchronous crash log when one is configured.
func buildLogger(cfg *config.Config) (*slog.Logger, *logging.CrashLog, error) {
	base := logging.Config{
		Level:  logging.ParseLevel(cfg.Logging.Level),
		Format: logging.ParseFormat(cfg.Logging.Format),
	}
	if cfg.Logging.CrashLog == "" {
		return logging.New(base), nil, nil
	}

	crash, err := logging.OpenCrashLog(cfg.Logging.CrashLog, base.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open crash log: %w", err)
	}
	handler := logging.NewMultiHandler(logging.NewHandler(base), crash.Handler())
	return slog.New(handler), crash, nil
}

// runServeWithFlags is the core serve logic called by the cobra command.
func runServeWithFlags(cmd *cobra.Command, f *serveFlags) error {
	cfg, err := buildServeConfig(f, cmd.Flags().Changed)
	if err != nil {
		return err
	}

	log, crash, err := buildLogger(cfg)
	if err != nil {
		return err
	}
	if crash != nil {
		defer func() { _ = crash.Close() }()
	}

	catalog := fault.New()
	reg := metrics.New()

	serverOpts := []control.Option{
		control.WithLogger(log),
		control.WithMetrics(reg),
		control.WithVersion(Version),
	}
	if cfg.Server.Host != "" {
		serverOpts = append(serverOpts, control.WithHost(cfg.Server.Host))
	}
	if cfg.Events.Enabled {
		serverOpts = append(serverOpts, control.WithEvents(cfg.Events.Buffer))
	}
	server := control.New(catalog, cfg.Server.Port, serverOpts...)

	var ctl *ctlfile.Controller
	if cfg.Control.Enabled {
		ctl = ctlfile.New(catalog, cfg.Control.Path,
			ctlfile.WithLogger(log),
			ctlfile.WithMetrics(reg),
			ctlfile.WithNotify(server.Publish),
		)
		if err := ctl.Open(); err != nil {
			log.Warn("control pipe unavailable", "path", cfg.Control.Path, "error", err)
			ctl = nil
		}
	}

	if err := server.Start(); err != nil {
		if ctl != nil {
			_ = ctl.Close()
		}
		return fmt.Errorf("failed to start control API: %w", err)
	}

	printServeStartupMessage(cfg, catalog, ctl)
	log.Info("faultd started",
		"port", cfg.Server.Port,
		"session", server.Session(),
		"faults", len(catalog.Names()))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\nShutting down...")

	if ctl != nil {
		if err := ctl.Close(); err != nil {
			log.Warn("control pipe shutdown error", "error", err)
		}
	}
	if err := server.Stop(); err != nil {
		log.Warn("control API shutdown error", "error", err)
	}
	log.Info("faultd stopped")
	return nil
}

// printServeStartupMessage prints the endpoints the daemon is serving on.
func printServeStartupMessage(cfg *config.Config, catalog *fault.Catalog, ctl *ctlfile.Controller) {
	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	fmt.Printf("faultd ready with %d faults in the catalog\n", len(catalog.Names()))
	fmt.Printf("  Control API:  http://%s:%d\n", host, cfg.Server.Port)
	if cfg.Events.Enabled {
		fmt.Printf("  Events:       ws://%s:%d/events\n", host, cfg.Server.Port)
	}
	fmt.Printf("  Metrics:      http://%s:%d/metrics\n", host, cfg.Server.Port)
	if ctl != nil {
		fmt.Printf("  Control pipe: %s\n", ctl.Path())
		fmt.Printf("  Listing:      %s\n", ctl.ListPath())
	}
	fmt.Println()
	fmt.Println("Trigger a fault (this kills the daemon):")
	fmt.Printf("  faultd trigger EXCEPTION\n")
}
