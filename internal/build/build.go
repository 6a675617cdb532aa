// Package build holds the version information of the binary. The variables
// are set with -ldflags -X and fall back to the VCS stamp of the module.
package build

import (
	"runtime/debug"
	"time"
)

var (
	commit  = ""
	date    = ""
	version = "dev"
)

var Current = read()

type Build struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit,omitempty"`
	Date      time.Time `json:"date,omitempty"`
	Modified  bool      `json:"modified,omitempty"`
	GoVersion string    `json:"go_version"`
}

func (b Build) String() string {
	s := b.Version
	if b.Commit != "" {
		c := b.Commit
		if len(c) > 12 {
			c = c[:12]
		}
		s += " (" + c
		if b.Modified {
			s += "-dirty"
		}
		s += ")"
	}
	return s
}

func read() Build {
	b := Build{
		Version: version,
		Commit:  commit,
	}
	b.Date, _ = time.Parse(time.RFC3339, date)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	b.GoVersion = info.GoVersion
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Date.IsZero() {
				b.Date, _ = time.Parse(time.RFC3339, s.Value)
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}
