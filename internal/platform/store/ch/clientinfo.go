package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// defaultClientName shows up in system.query_log when no name is configured
const defaultClientName = "stashfilter"

// BuildClientInfo returns a ClientInfo describing this process
// name is the application, tag a free form build or deploy label
func BuildClientInfo(name, tag string) clickhouse.ClientInfo {
	if strings.TrimSpace(name) == "" {
		name = defaultClientName
	}
	host, _ := os.Hostname()

	type kv = struct{ Name, Version string }

	products := []kv{
		{Name: strings.TrimSpace(name), Version: strings.TrimSpace(tag)},
		{Name: "go", Version: runtime.Version()},
		{Name: "commit", Version: vcsShortSHA()},
		{Name: "host", Version: host},
	}
	return clickhouse.ClientInfo{Products: products}
}

var readBuildInfo = debug.ReadBuildInfo

func vcsShortSHA() string {
	if bi, ok := readBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
