package version

import (
	"fmt"
	"runtime"
)

// set by the linker with -ldflags "-X"
var (
	// Version of the build
	Version = "v0.0.0-dev"
	// Commit of the build
	Commit = ""
)

// Info describes the build
type Info struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Runtime string `json:"runtime" yaml:"runtime"`
}

// Current returns the current build info
func Current() Info {
	return Info{
		Version: Version,
		Commit:  Commit,
		Runtime: runtime.Version(),
	}
}

func (v Info) String() string {
	if v.Commit == "" {
		return fmt.Sprintf("%s (%s)", v.Version, v.Runtime)
	}
	return fmt.Sprintf("%s-%s (%s)", v.Version, v.Commit, v.Runtime)
}
