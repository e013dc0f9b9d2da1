// Package version reports build information for the stash filter binaries
package version

import "runtime/debug"

// ServiceName names the HTTP service in logs and the meta endpoints
const ServiceName = "stashfilter-api"

// BuildInfo holds version information about a build
type BuildInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version,omitempty"`
}

// Info returns the build information of the API service.
// Set via -ldflags "-X 'github.com/kweimann/poe-stash-filter/internal/core/version.version=v0.1.0'
// -X 'github.com/kweimann/poe-stash-filter/internal/core/version.commit=abcd'"
func Info() BuildInfo { return For(ServiceName) }

// For returns the build information labelled with service
func For(service string) BuildInfo {
	bi := BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
	if info, ok := readBuildInfo(); ok {
		bi.GoVersion = info.GoVersion
		if bi.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			bi.Version = info.Main.Version
		}
	}
	return bi
}

var readBuildInfo = debug.ReadBuildInfo

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
