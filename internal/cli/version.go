package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/output"
	versionpkg "github.com/mrz1836/suiwallet/internal/version"
)

const (
	devVersionString = "dev"
	releaseOwner     = "mrz1836"
	releaseRepo      = "suiwallet"
	releaseTimeout   = 10 * time.Second
)

// BuildInfo is stamped into the binary at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
var (
	buildInfo    BuildInfo
	versionCheck bool

	// latestReleaseFn is swapped in tests.
	latestReleaseFn = func(cmd *cobra.Command) (*versionpkg.Release, error) {
		ctx, cancel := contextWithTimeout(cmd, releaseTimeout)
		defer cancel()
		return versionpkg.NewChecker().Latest(ctx, releaseOwner, releaseRepo)
	}
)

// versionCmd prints build information.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Show the suiwallet version, commit and build date.

With --check, the latest GitHub release is compared against this build.`,
	Example: `  suiwallet version
  suiwallet version --check
  suiwallet version -o json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	versionCmd.GroupID = "config"
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
}

// formatVersion renders build info with placeholders for missing fields.
func formatVersion(info BuildInfo) string {
	v, commit, date := info.Version, info.Commit, info.Date
	if v == "" {
		v = devVersionString
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", v, commit, date)
}

type versionResponse struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Date      string `json:"date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Latest    string `json:"latest,omitempty"`
	Newer     bool   `json:"update_available,omitempty"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	resp := versionResponse{
		Version:   buildInfo.Version,
		Commit:    buildInfo.Commit,
		Date:      buildInfo.Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if resp.Version == "" {
		resp.Version = devVersionString
	}

	if versionCheck {
		release, err := latestReleaseFn(cmd)
		if err != nil {
			return fmt.Errorf("checking latest release: %w", err)
		}
		resp.Latest = versionpkg.Normalize(release.TagName)
		resp.Newer = versionpkg.IsNewer(resp.Version, release.TagName)
	}

	w := cmd.OutOrStdout()
	if fmtr := formatFor(cmd); fmtr.IsJSON() {
		return output.WriteJSON(w, resp)
	}
	displayVersionText(w, resp)
	return nil
}

func displayVersionText(w io.Writer, resp versionResponse) {
	out(w, "suiwallet %s\n", formatVersion(BuildInfo{Version: resp.Version, Commit: resp.Commit, Date: resp.Date}))
	out(w, "  go: %s\n", resp.GoVersion)
	out(w, "  platform: %s\n", resp.Platform)
	if resp.Latest == "" {
		return
	}
	if resp.Newer {
		out(w, "  update available: %s\n", resp.Latest)
		return
	}
	out(w, "  up to date (latest: %s)\n", resp.Latest)
}
