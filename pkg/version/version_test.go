package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillFromBuildInfo(t *testing.T) {
	t.Run("Should use module version and VCS stamp when ldflags are absent", func(t *testing.T) {
		info := Info{Version: "dev", GitCommit: "none", BuildTime: "unknown"}
		fillFromBuildInfo(&info, &debug.BuildInfo{
			Main: debug.Module{Version: "v1.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc123"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		})
		assert.Equal(t, "v1.4.0", info.Version)
		assert.Equal(t, "abc123", info.GitCommit)
		assert.Equal(t, "2026-01-02T03:04:05Z", info.BuildTime)
	})

	t.Run("Should keep values injected with ldflags", func(t *testing.T) {
		info := Info{Version: "1.2.3", GitCommit: "deadbee", BuildTime: "yesterday"}
		fillFromBuildInfo(&info, &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
		})
		assert.Equal(t, Info{Version: "1.2.3", GitCommit: "deadbee", BuildTime: "yesterday"}, info)
	})
}

func TestInfo_String(t *testing.T) {
	info := Info{Version: "1.2.3", GitCommit: "abc", BuildTime: "now", GoVersion: "go1.24.0", Platform: "linux/amd64"}
	assert.Equal(t, "codeprompt version 1.2.3 (commit: abc) built at now with go1.24.0 on linux/amd64", info.String())
}
