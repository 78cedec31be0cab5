package adapters

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path"
	"time"

	"github.com/opencontainers/go-digest"

	"cos-mkimg/internal/core"
	"cos-mkimg/internal/ports"
	"cos-mkimg/internal/types"
)

// TarballAdapter writes the uncompressed component bundle handed to the
// booter.
type TarballAdapter struct {
	Now func() time.Time
}

func NewTarballAdapter() TarballAdapter {
	return TarballAdapter{Now: time.Now}
}

// Create writes a <key>/ directory entry followed by one regular file per
// bundle file, in order. Every binary is checked before the archive is
// opened so a missing one never leaves a partial bundle behind.
func (a TarballAdapter) Create(tarPath string, key string, files []core.BundleFile) ([]types.BundleEntry, error) {
	for _, file := range files {
		if _, err := os.Stat(file.Path); err != nil {
			return nil, core.NewIoFailure(file.Name, "compiled binary missing: "+file.Path, err)
		}
	}

	out, err := os.Create(tarPath)
	if err != nil {
		return nil, core.NewIoFailure("", "failed to create bundle "+tarPath, err)
	}
	tw := tar.NewWriter(out)

	entries, writeErr := a.writeBundle(tw, key, files)
	if err := tw.Close(); err != nil && writeErr == nil {
		writeErr = core.NewIoFailure("", "failed to finish bundle "+tarPath, err)
	}
	if err := out.Close(); err != nil && writeErr == nil {
		writeErr = core.NewIoFailure("", "failed to close bundle "+tarPath, err)
	}
	if writeErr != nil {
		return nil, writeErr
	}
	return entries, nil
}

func (a TarballAdapter) writeBundle(tw *tar.Writer, key string, files []core.BundleFile) ([]types.BundleEntry, error) {
	dir := &tar.Header{
		Name:     key + "/",
		Typeflag: tar.TypeDir,
		Mode:     0o755,
		ModTime:  a.now(),
	}
	if err := tw.WriteHeader(dir); err != nil {
		return nil, core.NewIoFailure("", "failed to write bundle directory entry", err)
	}

	entries := make([]types.BundleEntry, 0, len(files))
	for _, file := range files {
		entry, err := writeBundleFile(tw, key, file)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func writeBundleFile(tw *tar.Writer, key string, file core.BundleFile) (types.BundleEntry, error) {
	info, err := os.Stat(file.Path)
	if err != nil {
		return types.BundleEntry{}, core.NewIoFailure(file.Name, "compiled binary missing: "+file.Path, err)
	}
	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return types.BundleEntry{}, core.NewIoFailure(file.Name, "failed to build tar header", err)
	}
	header.Name = path.Join(key, file.Name)
	if err := tw.WriteHeader(header); err != nil {
		return types.BundleEntry{}, core.NewIoFailure(file.Name, "failed to write tar header", err)
	}

	in, err := os.Open(file.Path)
	if err != nil {
		return types.BundleEntry{}, core.NewIoFailure(file.Name, "failed to open binary", err)
	}
	defer in.Close()

	digester := digest.Canonical.Digester()
	size, err := io.Copy(io.MultiWriter(tw, digester.Hash()), in)
	if err != nil {
		return types.BundleEntry{}, core.NewIoFailure(file.Name, "failed to copy binary into bundle", err)
	}
	return types.BundleEntry{
		Name:   header.Name,
		Size:   size,
		Digest: digester.Digest().String(),
	}, nil
}

// List reads a bundle back, returning its regular-file entries in archive
// order.
func (a TarballAdapter) List(tarPath string) ([]types.BundleEntry, error) {
	in, err := os.Open(tarPath)
	if err != nil {
		return nil, core.NewIoFailure("", "failed to open bundle "+tarPath, err)
	}
	defer in.Close()

	var entries []types.BundleEntry
	tr := tar.NewReader(in)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.NewIoFailure("", "failed to read bundle "+tarPath, err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		dgst, err := digest.Canonical.FromReader(tr)
		if err != nil {
			return nil, core.NewIoFailure("", "failed to digest bundle entry "+header.Name, err)
		}
		entries = append(entries, types.BundleEntry{
			Name:   header.Name,
			Size:   header.Size,
			Digest: dgst.String(),
		})
	}
	return entries, nil
}

func (a TarballAdapter) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

var _ ports.BundlePort = TarballAdapter{}
