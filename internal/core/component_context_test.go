package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cos-mkimg/internal/types"
)

func TestComponentContextSynthesizesPrimaryExport(t *testing.T) {
	ctx, err := NewComponentContext(types.ComponentSpec{Name: "pong", Img: "pong.pingpong"})
	require.NoError(t, err)

	want := []Export{{Interface: "pong", Variant: types.DefaultVariant}}
	if diff := cmp.Diff(want, ctx.Exports); diff != "" {
		t.Fatalf("unexpected exports (-want +got):\n%s", diff)
	}
	assert.Equal(t, "pong", ctx.CompIf)
	assert.Equal(t, "pingpong", ctx.CompName)
	assert.Equal(t, "pong", ctx.VarName)
	assert.Equal(t, types.DefaultBaseAddr, ctx.BaseAddr)
	assert.Empty(t, ctx.LibraryDeps)
}

func TestComponentContextSentinelInterfaces(t *testing.T) {
	for _, iface := range []string{types.InterfaceTests, types.InterfaceNone} {
		t.Run(iface, func(t *testing.T) {
			ctx, err := NewComponentContext(types.ComponentSpec{Name: "c", Img: iface + ".impl"})
			require.NoError(t, err)
			assert.Empty(t, ctx.Exports)
		})
	}
}

func TestComponentContextKeepsExplicitPrimaryExport(t *testing.T) {
	ctx, err := NewComponentContext(types.ComponentSpec{
		Name: "sched",
		Img:  "sched.fprr",
		Interfaces: []types.InterfaceExport{
			{Interface: "init", Variant: "kernel"},
			{Interface: "sched", Variant: "lock"},
			{Interface: "syncipc"},
		},
	})
	require.NoError(t, err)

	want := []Export{
		{Interface: "init", Variant: "kernel"},
		{Interface: "sched", Variant: "lock"},
		{Interface: "syncipc", Variant: "stubs"},
	}
	if diff := cmp.Diff(want, ctx.Exports); diff != "" {
		t.Fatalf("unexpected exports (-want +got):\n%s", diff)
	}
}

func TestComponentContextAppendsPrimaryAfterDeclaredExports(t *testing.T) {
	ctx, err := NewComponentContext(types.ComponentSpec{
		Name:       "c",
		Img:        "capmgr.simple",
		Interfaces: []types.InterfaceExport{{Interface: "memmgr", Variant: "log"}},
	})
	require.NoError(t, err)

	want := []Export{
		{Interface: "memmgr", Variant: "log"},
		{Interface: "capmgr", Variant: "stubs"},
	}
	if diff := cmp.Diff(want, ctx.Exports); diff != "" {
		t.Fatalf("unexpected exports (-want +got):\n%s", diff)
	}
}

func TestComponentContextRecordsServersVerbatim(t *testing.T) {
	ctx, err := NewComponentContext(types.ComponentSpec{
		Name: "c",
		Img:  "pong.pingpong",
		Deps: []types.DependencySpec{
			{Interface: "capmgr", Server: "cm", Variant: "ignored"},
			{Interface: "sched", Server: "ghost"},
		},
	})
	require.NoError(t, err)

	want := []ServerRef{
		{Interface: "capmgr", Server: "cm"},
		{Interface: "sched", Server: "ghost"},
	}
	if diff := cmp.Diff(want, ctx.Servers); diff != "" {
		t.Fatalf("unexpected servers (-want +got):\n%s", diff)
	}
	assert.Empty(t, ctx.Deps)
}

func TestComponentContextParams(t *testing.T) {
	t.Run("absent params yield an empty tree", func(t *testing.T) {
		ctx, err := NewComponentContext(types.ComponentSpec{Name: "c", Img: "pong.pingpong"})
		require.NoError(t, err)
		require.NotNil(t, ctx.Params)
		assert.True(t, ctx.Params.IsArray())
		assert.Equal(t, "params", ctx.Params.Key)
		assert.Empty(t, ctx.Params.Children)
	})

	t.Run("declared params keep their order", func(t *testing.T) {
		ctx, err := NewComponentContext(types.ComponentSpec{
			Name:   "c",
			Img:    "pong.pingpong",
			Params: []types.Param{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}},
		})
		require.NoError(t, err)
		require.Len(t, ctx.Params.Children, 2)
		assert.Equal(t, "b", ctx.Params.Children[0].Key)
		assert.Equal(t, "1", ctx.Params.Children[1].Value)
	})
}

func TestComponentContextRejectsMalformedImg(t *testing.T) {
	for _, img := range []string{"pong", "a.b.c", ".impl", ""} {
		t.Run(img, func(t *testing.T) {
			_, err := NewComponentContext(types.ComponentSpec{Name: "c", Img: img})
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestComponentContextObjectName(t *testing.T) {
	ctx, err := NewComponentContext(types.ComponentSpec{Name: "pongcomp", Img: "pong.pingpong"})
	require.NoError(t, err)
	assert.Equal(t, "pong.pingpong.pongcomp", ctx.ObjectName())
}
