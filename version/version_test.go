package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBuildInfoMainModule(t *testing.T) {
	info := &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "v1.2.0"}}
	assert.Equal(t, "v1.2.0", fromBuildInfo(info))
}

func TestFromBuildInfoDependency(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "example.com/server", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/df-mc/dragonfly", Version: "v0.10.3"},
			{Path: ModulePath, Version: "v0.3.1"},
		},
	}
	assert.Equal(t, "v0.3.1", fromBuildInfo(info))
}

func TestFromBuildInfoReplacedDependency(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: "example.com/server"},
		Deps: []*debug.Module{
			{Path: ModulePath, Version: "v0.3.1", Replace: &debug.Module{Path: "../friendsandfoes", Version: "v0.4.0"}},
		},
	}
	assert.Equal(t, "v0.4.0", fromBuildInfo(info))
}

func TestFromBuildInfoMissing(t *testing.T) {
	info := &debug.BuildInfo{Main: debug.Module{Path: "example.com/server"}}
	assert.Empty(t, fromBuildInfo(info))
}
