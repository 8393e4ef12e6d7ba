// Package version holds the build information of tontoken. GitCommit,
// GitState and BuildDate are set by the build with `-ldflags -X`.
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "0.1.0"
	GitCommit string
	GitState  string
	BuildDate string
)

type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GitState  string `json:"git_state,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitState:  GitState,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	commit := i.GitCommit
	if len(commit) < 1 {
		commit = "unknown"
	} else if i.GitState == "dirty" {
		commit += "-dirty"
	}

	return fmt.Sprintf("tontoken %s (git=%s build=%s %s)", i.Version, commit, i.BuildDate, i.GoVersion)
}
