package app

import (
	"cos-mkimg/internal/adapters"
	"cos-mkimg/internal/ports"
)

type Service struct {
	SpecLoader ports.SystemSpecPort
	Runner     ports.ToolRunnerPort
	BuildDirs  ports.BuildDirPort
	Bundler    ports.BundlePort
	ArgsFiles  ports.ArgsFilePort
	Layout     func(root string) ports.LayoutPort
}

func NewService() Service {
	return Service{
		SpecLoader: adapters.NewSpecFileAdapter(),
		Runner:     adapters.NewMakeRunnerAdapter(),
		BuildDirs:  adapters.NewBuildDirAdapter(),
		Bundler:    adapters.NewTarballAdapter(),
		ArgsFiles:  adapters.NewArgsFileAdapter(),
		Layout: func(root string) ports.LayoutPort {
			return adapters.NewLayoutAdapter(root)
		},
	}
}
