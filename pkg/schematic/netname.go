package schematic

import (
	"fmt"
	"sort"
	"strings"
)

// DeriveNetNames assigns a stable, unique name to every net in s whose
// Name is currently empty, and re-keys s.Nets under the derived name.
//
// Per the component-path-only resolution of the open question in §9:
// the candidate name is the shortest hierarchical suffix of the net's
// first port's *component* path (the pin name itself is always
// excluded) that is not already taken, either by a net that was named
// before this pass or by one named earlier in it. If no suffix length
// restores uniqueness, the net falls back to
// "NET_<id>".
//
// DeriveNetNames must run before Validate, since checkNetNameUniqueness
// rejects empty-named nets.
func (s *Schematic) DeriveNetNames() {
	type pending struct {
		oldKey string
		net    *Net
	}
	var unnamed []pending
	for key, n := range s.Nets {
		if n.Name == "" {
			unnamed = append(unnamed, pending{oldKey: key, net: n})
		}
	}
	if len(unnamed) == 0 {
		return
	}

	assigned := make(map[string]bool, len(s.Nets))
	for key, n := range s.Nets {
		if n.Name != "" {
			assigned[key] = true
		}
	}

	// Sort by the net's canonical first-port ref so the pass is
	// deterministic regardless of map iteration order.
	sort.Slice(unnamed, func(i, j int) bool {
		return firstPortKey(unnamed[i].net) < firstPortKey(unnamed[j].net)
	})

	for _, p := range unnamed {
		name := candidateNetName(p.net, assigned)
		assigned[name] = true
		p.net.Name = name
		delete(s.Nets, p.oldKey)
		s.Nets[name] = p.net
	}
}

func firstPortKey(n *Net) string {
	if len(n.Ports) == 0 {
		return ""
	}
	return n.Ports[0].String()
}

// candidateNetName implements the shortest-unique-component-path-suffix
// rule, falling back to NET_<id>.
func candidateNetName(n *Net, taken map[string]bool) string {
	if len(n.Ports) == 0 {
		return fallbackNetName(n, taken)
	}
	componentPath, ok := n.Ports[0].Parent()
	if !ok || len(componentPath.Segments()) == 0 {
		return fallbackNetName(n, taken)
	}
	segments := componentPath.Segments()
	for length := 1; length <= len(segments); length++ {
		suffix := segments[len(segments)-length:]
		candidate := strings.Join(suffix, "/")
		if !taken[candidate] {
			return candidate
		}
	}
	return fallbackNetName(n, taken)
}

func fallbackNetName(n *Net, taken map[string]bool) string {
	name := fmt.Sprintf("NET_%d", n.ID)
	for taken[name] {
		// NetIDs are unique within a run, so this should never loop;
		// guard against it anyway rather than emitting a duplicate.
		name = name + "_"
	}
	return name
}
