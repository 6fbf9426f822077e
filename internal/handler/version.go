package handler

import (
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"time"
)

// VersionInfo describes the running build
type VersionInfo struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
	Uptime    string `json:"uptime"`
}

// Build-time variables (injected via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = ""
)

// HandleVersion reports build information for service and how long it has been up
func HandleVersion(service string, started time.Time) http.HandlerFunc {
	info := VersionInfo{
		Service:   service,
		Version:   resolveVersion(),
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
		GitCommit: resolveCommit(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := info
		resp.Uptime = time.Since(started).Truncate(time.Second).String()
		respondJSON(w, http.StatusOK, resp)
	}
}

// resolveVersion prefers the ldflags value, then VERSION from the environment
func resolveVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if v := os.Getenv(EnvVersion); v != "" {
		return v
	}
	return "dev"
}

// resolveCommit falls back to the VCS stamp embedded by go build
func resolveCommit() string {
	if GitCommit != "" {
		return GitCommit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
