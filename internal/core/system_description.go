package core

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"cos-mkimg/internal/initargs"
	"cos-mkimg/internal/types"
)

// ComponentIDs numbers the components as the booter sees them: the booter
// is 1 and every other component follows in build order.
func (b *BuildContext) ComponentIDs() map[string]int {
	ids := map[string]int{b.booter: 1}
	for i, name := range b.nonBooterNames() {
		ids[name] = i + 2
	}
	return ids
}

// ExecutionOrder returns every component but the booter, with servers
// ordered before their clients. Ties are broken by build order. Components
// on a dependency cycle are appended in build order.
func (b *BuildContext) ExecutionOrder(ctx context.Context) []string {
	indegree := map[string]int{}
	clients := map[string][]string{}
	for _, name := range b.names {
		if name == b.booter {
			continue
		}
		servers := map[string]struct{}{}
		for _, dep := range b.comps[name].Deps {
			if dep.Server == b.booter || dep.Server == name {
				continue
			}
			if _, seen := servers[dep.Server]; seen {
				continue
			}
			servers[dep.Server] = struct{}{}
			clients[dep.Server] = append(clients[dep.Server], name)
		}
		indegree[name] = len(servers)
	}

	order := make([]string, 0, len(indegree))
	done := map[string]bool{}
	for len(order) < len(indegree) {
		next := ""
		for _, name := range b.names {
			if _, ok := indegree[name]; !ok || done[name] {
				continue
			}
			if indegree[name] == 0 {
				next = name
				break
			}
		}
		if next == "" {
			break
		}
		done[next] = true
		order = append(order, next)
		for _, client := range clients[next] {
			indegree[client]--
		}
	}

	if len(order) < len(indegree) {
		var cycle []string
		for _, name := range b.names {
			if _, ok := indegree[name]; ok && !done[name] {
				cycle = append(cycle, name)
			}
		}
		log.Ctx(ctx).Warn().Strs("components", cycle).Msg("dependency cycle, using build order")
		order = append(order, cycle...)
	}
	return order
}

// Describe serializes the composition of the whole system as the booter's
// initial arguments.
func (b *BuildContext) Describe(ctx context.Context) (initargs.KV, error) {
	if _, err := b.Component(b.booter); err != nil {
		return initargs.KV{}, err
	}
	ids := b.ComponentIDs()
	id := func(name string) string {
		return strconv.Itoa(ids[name])
	}

	ordered := append([]string{b.booter}, b.nonBooterNames()...)

	var names, binaries, baseAddrs, deps []initargs.KV
	for _, name := range ordered {
		c := b.comps[name]
		names = append(names, initargs.NewKey(id(name), name))
		baseAddrs = append(baseAddrs, initargs.NewKey(id(name), c.BaseAddr))
		if name != b.booter {
			binaries = append(binaries, initargs.NewKey(id(name), c.ObjectName()))
		}
		if len(c.Deps) == 0 {
			continue
		}
		edges := make([]initargs.KV, 0, len(c.Deps))
		for _, dep := range c.Deps {
			edges = append(edges, initargs.NewKey(dep.Interface, id(dep.Server)))
		}
		deps = append(deps, initargs.NewArray(id(name), edges))
	}

	var execute []initargs.KV
	for i, name := range b.ExecutionOrder(ctx) {
		execute = append(execute, initargs.NewKey(strconv.Itoa(i), id(name)))
	}

	return initargs.NewTop([]initargs.KV{
		initargs.NewKey("tarball", types.TarballKey),
		initargs.NewArray("names", names),
		initargs.NewArray("binaries", binaries),
		initargs.NewArray("baseaddrs", baseAddrs),
		initargs.NewArray("deps", deps),
		initargs.NewArray("execute", execute),
	}), nil
}

// nonBooterNames lists the non-booter components in id order.
func (b *BuildContext) nonBooterNames() []string {
	out := make([]string, 0, len(b.names))
	for _, name := range b.names {
		if name != b.booter {
			out = append(out, name)
		}
	}
	return out
}
