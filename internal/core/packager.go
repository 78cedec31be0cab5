package core

import (
	"cos-mkimg/internal/initargs"
)

const (
	initArgsSuffix = "_initargs.c"
	initFSSuffix   = "_initfs.tar"
)

// BundleFile is a compiled component and the name it is stored under.
type BundleFile struct {
	Path string
	Name string
}

// BooterArtifacts are the files generated for, and produced by, the booter.
type BooterArtifacts struct {
	ObjectPath   string
	TarPath      string
	InitArgsPath string
}

// BundleContents lists every component except the booter, in build order.
func (b *BuildContext) BundleContents() ([]BundleFile, error) {
	booterObj, err := b.ObjectName(b.booter)
	if err != nil {
		return nil, err
	}
	var files []BundleFile
	for _, c := range b.Components() {
		name := c.ObjectName()
		if name == booterObj {
			continue
		}
		files = append(files, BundleFile{Path: b.objectPath(c), Name: name})
	}
	return files, nil
}

func (b *BuildContext) BooterArtifacts() (BooterArtifacts, error) {
	path, err := b.ObjectPath(b.booter)
	if err != nil {
		return BooterArtifacts{}, err
	}
	return BooterArtifacts{
		ObjectPath:   path,
		TarPath:      path + initFSSuffix,
		InitArgsPath: path + initArgsSuffix,
	}, nil
}

// InitArgsPath is where the generated arguments of a component are written.
func (b *BuildContext) InitArgsPath(name string) (string, error) {
	path, err := b.ObjectPath(name)
	if err != nil {
		return "", err
	}
	return path + initArgsSuffix, nil
}

// InitArgs wraps the component's own parameters in the top-level array.
func (c *ComponentContext) InitArgs() initargs.KV {
	if c.Params == nil {
		return initargs.NewTop([]initargs.KV{initargs.NewArray("params", nil)})
	}
	return initargs.NewTop([]initargs.KV{*c.Params})
}
