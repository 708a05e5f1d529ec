package handler

import (
	"net/http"
	"runtime"
)

// Build-time variables (injected via ldflags)
var (
	Version   = ""
	BuildTime = "unknown"
	GitCommit = "unset"
)

// ServiceInfo is the deployment identity reported by /version
type ServiceInfo struct {
	Name          string
	Version       string
	Environment   string
	ReferralBonus int64
}

// VersionInfo is the /version response body
type VersionInfo struct {
	Service       string `json:"service"`
	Version       string `json:"version"`
	Environment   string `json:"environment,omitempty"`
	ReferralBonus int64  `json:"referral_bonus"`
	GoVersion     string `json:"go_version"`
	BuildTime     string `json:"build_time,omitempty"`
	GitCommit     string `json:"git_commit,omitempty"`
}

// HandleVersion reports the running build and the configured bonus, so
// operators can tell which amount a deployment credits.
func HandleVersion(info ServiceInfo) http.HandlerFunc {
	body := VersionInfo{
		Service:       info.Name,
		Version:       info.Version,
		Environment:   info.Environment,
		ReferralBonus: info.ReferralBonus,
		GoVersion:     runtime.Version(),
		BuildTime:     BuildTime,
		GitCommit:     GitCommit,
	}
	// a linked-in version wins over configuration
	if Version != "" {
		body.Version = Version
	}
	if body.Version == "" {
		body.Version = "dev"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, body)
	}
}
