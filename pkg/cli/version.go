package cli

import (
	"flag"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/faultd/faultd/pkg/cli/internal/output"
)

// BuildInfo carries the build-time variables injected via ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildDate string
}

// VersionOutput represents the JSON output format for version.
type VersionOutput struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// RunVersion handles the version command.
func RunVersion(info BuildInfo, args []string) error {
	fs := flag.NewFlagSet("version", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "Output in JSON format")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	version := info.Version
	commit := info.Commit
	date := info.BuildDate

	// Fill in from the embedded build info when ldflags were not set.
	if bi, ok := debug.ReadBuildInfo(); ok {
		if version == "dev" || version == "" {
			version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if commit == "unknown" || commit == "" {
					commit = setting.Value
				}
			case "vcs.time":
				if date == "unknown" || date == "" {
					date = setting.Value
				}
			case "vcs.modified":
				if setting.Value == "true" {
					commit += "-dirty"
				}
			}
		}
	}

	out := VersionOutput{
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}

	if *jsonOutput {
		return output.JSON(out)
	}

	fmt.Printf("faultd %s (%s, %s)\n", out.Version, out.Commit, out.Date)
	fmt.Printf("%s %s/%s\n", out.Go, out.OS, out.Arch)
	return nil
}
