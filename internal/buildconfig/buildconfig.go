package buildconfig

// Build-time variables injected via ldflags:
//
//	-X github.com/Harshitk-cp/brainbase/internal/buildconfig.version=v1.2.0
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = ""
)

// Info identifies the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time,omitempty"`
}

func Version() string {
	return version
}

func Current() Info {
	return Info{Version: version, Commit: commit, BuildTime: buildTime}
}
