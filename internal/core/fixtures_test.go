package core

import "cos-mkimg/internal/types"

// pingPongSystem is a minimal system: a booter, a capability manager that
// exports a log variant, and a client that never lists its own interface.
func pingPongSystem() []types.ComponentSpec {
	return []types.ComponentSpec{
		{
			Name:        "booter",
			Img:         "no_interface.llbooter",
			Constructor: types.KernelConstructor,
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
	}
}
