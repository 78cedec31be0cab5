package adapters

import (
	"os"
	"path/filepath"

	"cos-mkimg/internal/ports"
)

// LayoutAdapter maps components and interfaces onto the source tree:
// <root>/components/implementation/<if>/<impl> and
// <root>/components/interface/<if>/<variant>.
type LayoutAdapter struct {
	Root string
}

func NewLayoutAdapter(root string) LayoutAdapter {
	return LayoutAdapter{Root: root}
}

func (a LayoutAdapter) ImplementationDir(iface string, impl string) string {
	return filepath.Join(a.Root, "components", "implementation", iface, impl)
}

func (a LayoutAdapter) InterfaceDir(iface string, variant string) string {
	return filepath.Join(a.Root, "components", "interface", iface, variant)
}

func (a LayoutAdapter) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

var _ ports.LayoutPort = LayoutAdapter{}
