package ports

import "cos-mkimg/internal/types"

type SystemSpecPort interface {
	LoadSystem(path string) (types.SystemSpec, error)
}
