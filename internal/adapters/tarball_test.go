package adapters

import (
	"archive/tar"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cos-mkimg/internal/core"
	"cos-mkimg/internal/types"
)

func writeBinary(t *testing.T, dir string, name string, content []byte) core.BundleFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o755))
	return core.BundleFile{Path: path, Name: name}
}

func TestTarballAdapterRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a := []byte("\x7fELF component a")
	b := []byte("\x7fELF component b, a little longer")
	files := []core.BundleFile{
		writeBinary(t, dir, "a.impl.a.o", a),
		writeBinary(t, dir, "b.impl.b.o", b),
	}
	adapter := TarballAdapter{Now: func() time.Time { return time.Unix(0, 0) }}
	tarPath := filepath.Join(dir, "booter_initfs.tar")

	created, err := adapter.Create(tarPath, types.TarballKey, files)
	require.NoError(t, err)

	want := []types.BundleEntry{
		{Name: "binaries/a.impl.a.o", Size: int64(len(a)), Digest: digest.FromBytes(a).String()},
		{Name: "binaries/b.impl.b.o", Size: int64(len(b)), Digest: digest.FromBytes(b).String()},
	}
	if diff := cmp.Diff(want, created); diff != "" {
		t.Fatalf("unexpected created entries (-want +got):\n%s", diff)
	}

	listed, err := adapter.List(tarPath)
	require.NoError(t, err)
	if diff := cmp.Diff(want, listed); diff != "" {
		t.Fatalf("unexpected listed entries (-want +got):\n%s", diff)
	}
}

func TestTarballAdapterLayout(t *testing.T) {
	dir := t.TempDir()
	content := []byte("payload")
	files := []core.BundleFile{writeBinary(t, dir, "x.y.z.o", content)}
	tarPath := filepath.Join(dir, "out.tar")

	_, err := NewTarballAdapter().Create(tarPath, "binaries", files)
	require.NoError(t, err)

	f, err := os.Open(tarPath)
	require.NoError(t, err)
	defer f.Close()
	tr := tar.NewReader(f)

	header, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "binaries/", header.Name)
	assert.Equal(t, byte(tar.TypeDir), header.Typeflag)

	header, err = tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "binaries/x.y.z.o", header.Name)
	assert.Equal(t, byte(tar.TypeReg), header.Typeflag)
	got, err := io.ReadAll(tr)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(content, got))

	_, err = tr.Next()
	assert.True(t, errors.Is(err, io.EOF))
}

func TestTarballAdapterEmptyBundle(t *testing.T) {
	tarPath := filepath.Join(t.TempDir(), "empty.tar")
	created, err := NewTarballAdapter().Create(tarPath, "binaries", nil)
	require.NoError(t, err)
	assert.Empty(t, created)

	listed, err := NewTarballAdapter().List(tarPath)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestTarballAdapterMissingBinary(t *testing.T) {
	dir := t.TempDir()
	tarPath := filepath.Join(dir, "out.tar")
	files := []core.BundleFile{{Path: filepath.Join(dir, "nope.o"), Name: "nope.o"}}

	_, err := NewTarballAdapter().Create(tarPath, "binaries", files)
	require.Error(t, err)
	assert.Equal(t, core.KindIoFailure, core.KindOf(err))

	_, statErr := os.Stat(tarPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTarballAdapterListMissingArchive(t *testing.T) {
	_, err := NewTarballAdapter().List(filepath.Join(t.TempDir(), "missing.tar"))
	require.Error(t, err)
	assert.Equal(t, core.KindIoFailure, core.KindOf(err))
}
