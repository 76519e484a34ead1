// Package version carries build metadata injected with
// -ldflags "-X github.com/grovetools/ctnotes/version.Version=...".
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo returns the build metadata of the running binary.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String renders one "label: value" line per field.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Commit:    %s\n", i.Commit)
	fmt.Fprintf(&b, "  Built:     %s\n", i.BuildDate)
	fmt.Fprintf(&b, "  Go:        %s\n", i.GoVersion)
	fmt.Fprintf(&b, "  Platform:  %s", i.Platform)
	return b.String()
}
