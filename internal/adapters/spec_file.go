package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"cos-mkimg/internal/ports"
	"cos-mkimg/internal/types"
)

type SpecFileAdapter struct{}

func NewSpecFileAdapter() SpecFileAdapter {
	return SpecFileAdapter{}
}

// LoadSystem reads a system spec, choosing the decoder from the file
// extension.
func (a SpecFileAdapter) LoadSystem(path string) (types.SystemSpec, error) {
	if strings.TrimSpace(path) == "" {
		return types.SystemSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("system spec path is required")
	}
	format, err := specFormat(path)
	if err != nil {
		return types.SystemSpec{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SystemSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("system spec file not found").
			WithCause(err)
	}
	var spec types.SystemSpec
	switch format {
	case types.SpecFormatTOML:
		err = toml.Unmarshal(data, &spec)
	default:
		err = yaml.Unmarshal(data, &spec)
	}
	if err != nil {
		return types.SystemSpec{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse " + string(format) + " system spec").
			WithCause(err)
	}
	return spec, nil
}

func specFormat(path string) (types.SpecFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return types.SpecFormatYAML, nil
	case ".toml":
		return types.SpecFormatTOML, nil
	default:
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unsupported system spec extension: " + filepath.Ext(path))
	}
}

var _ ports.SystemSpecPort = SpecFileAdapter{}
