package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cos-mkimg/internal/testutil"
	"cos-mkimg/internal/types"
)

func pingPongSpec() types.SystemSpec {
	return types.SystemSpec{
		System: types.SystemSection{Description: "ping-pong over a capability manager"},
		Components: []types.ComponentSpec{
			{
				Name:        "booter",
				Img:         "no_interface.llbooter",
				Constructor: "kernel",
				Interfaces:  []types.InterfaceExport{{Interface: "init"}},
			},
			{
				Name:       "pongsrv",
				Img:        "capmgr.simple",
				Interfaces: []types.InterfaceExport{{Interface: "capmgr", Variant: "log"}},
				Deps:       []types.DependencySpec{{Interface: "init", Server: "booter"}},
			},
			{
				Name:     "pong",
				Img:      "pong.pingpong",
				BaseAddr: "0x01000000",
				Deps:     []types.DependencySpec{{Interface: "capmgr", Server: "pongsrv"}},
				Params:   []types.Param{{Name: "prio", Value: "3"}},
			},
		},
	}
}

func TestLoadSystemYAML(t *testing.T) {
	spec, err := NewSpecFileAdapter().LoadSystem(testutil.Fixture(t, "pingpong.yaml"))
	require.NoError(t, err)

	want := pingPongSpec()
	want.System.Booter = "booter"
	if diff := cmp.Diff(want, spec); diff != "" {
		t.Fatalf("unexpected yaml spec (-want +got):\n%s", diff)
	}
}

func TestLoadSystemTOML(t *testing.T) {
	spec, err := NewSpecFileAdapter().LoadSystem(testutil.Fixture(t, "pingpong.toml"))
	require.NoError(t, err)

	if diff := cmp.Diff(pingPongSpec(), spec); diff != "" {
		t.Fatalf("unexpected toml spec (-want +got):\n%s", diff)
	}
	assert.Equal(t, "booter", spec.BooterName())
}

func TestLoadSystemErrors(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "system.json")
	require.NoError(t, os.WriteFile(unknown, []byte("{}"), 0o644))

	tests := []struct {
		name string
		path string
		code errbuilder.ErrCode
	}{
		{name: "empty path", path: " ", code: errbuilder.CodeInvalidArgument},
		{name: "unknown extension", path: unknown, code: errbuilder.CodeInvalidArgument},
		{name: "missing file", path: filepath.Join(dir, "missing.yaml"), code: errbuilder.CodeNotFound},
		{name: "malformed yaml", path: testutil.Fixture(t, "broken.yaml"), code: errbuilder.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpecFileAdapter().LoadSystem(tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.code, errbuilder.CodeOf(err))
		})
	}
}
