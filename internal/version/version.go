// Package version reports the unpacker's build identity for the -v flag's
// version line and feature list.
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables (override via -ldflags -X ...).
// Example:
//
//	go build -ldflags "-X github.com/nmeunpack/nme-unpacker/internal/version.Version=1.2.0"
var (
	Version   = "v1.0.0"
	Commit    = ""
	BuildDate = ""
)

// Features lists the decode paths this build supports, printed by -v.
var Features = []string{
	"dir-archive-traversal",
	"wad-palette-decode",
	"bmp-paletted-decode",
	"rle-rgba-decode",
	"png-output",
	"bmp-output",
}

type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	s := i.Version
	if s == "" {
		s = "dev"
	}
	if i.Commit != "" {
		s += fmt.Sprintf(" (%s)", i.Commit)
	}
	if i.BuildDate != "" {
		s += fmt.Sprintf(" built %s", i.BuildDate)
	}
	s += fmt.Sprintf(" [%s]", i.GoVersion)
	return s
}
