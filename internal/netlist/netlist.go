// Package netlist groups inferred connections into nets and per-component
// pin lists.
package netlist

import (
	"fmt"
	"sort"

	"boardscan/internal/component"
	"boardscan/internal/connectivity"
	"boardscan/internal/logger"
	"boardscan/internal/seq"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// NetPrefix is the sequence prefix for net ids.
const NetPrefix = "NET_"

// Net is the set of components attached to one trace.
type Net struct {
	ID         string   `json:"id"`         // e.g. "NET_1"
	Trace      string   `json:"trace"`      // Trace the net was grouped on
	Components []string `json:"components"` // In edge order
}

// Pin is one numbered terminal of a component.
type Pin struct {
	Number int    `json:"pin"`
	Net    string `json:"net"`             // Net id, or a synthesized pair id for direct links
	Trace  string `json:"trace,omitempty"` // Set for trace-mediated pins
}

// Entry is one component line of the netlist.
//
// Pins are derived from connection degree: every edge touching the
// component becomes one pin. This is an approximation; the physical pin
// count of the part is not known.
type Entry struct {
	ID    string         `json:"id"`
	Type  component.Type `json:"type"`
	Value string         `json:"value"`
	Pins  []Pin          `json:"pins"`
}

// Netlist is the grouped view of a run's connections.
type Netlist struct {
	Components []Entry    `json:"components"`
	Nets       []Net      `json:"nets"`
	Groups     [][]string `json:"groups"` // Components linked through component-component edges
}

// GroupNets groups component-trace edges by trace id into nets, numbered in
// first-seen order. Traces with no attached component produce no net.
func GroupNets(edges []connectivity.Edge, ids *seq.Sequence) []Net {
	var nets []Net
	byTrace := make(map[string]int)

	for _, e := range edges {
		if e.Kind != connectivity.ComponentTrace {
			continue
		}
		i, ok := byTrace[e.Trace]
		if !ok {
			i = len(nets)
			byTrace[e.Trace] = i
			nets = append(nets, Net{ID: ids.NextID(NetPrefix), Trace: e.Trace})
		}
		nets[i].Components = append(nets[i].Components, e.Component)
	}

	return nets
}

// PairNetID synthesizes the pin reference used for a direct component link.
func PairNetID(a, b string) string {
	return fmt.Sprintf("net_%s_%s", a, b)
}

// Pins numbers every edge touching id, in edge order, starting at 1.
func Pins(id string, edges []connectivity.Edge, netByTrace map[string]string) []Pin {
	var pins []Pin
	for _, e := range edges {
		if !e.Touches(id) {
			continue
		}
		pin := Pin{Number: len(pins) + 1}
		if e.Kind == connectivity.ComponentTrace {
			pin.Net = netByTrace[e.Trace]
			pin.Trace = e.Trace
		} else {
			pin.Net = PairNetID(e.Pair[0], e.Pair[1])
		}
		pins = append(pins, pin)
	}
	return pins
}

// Build assembles the netlist. Net ids are drawn from ids.
func Build(comps []component.Component, edges []connectivity.Edge, ids *seq.Sequence) Netlist {
	nets := GroupNets(edges, ids)

	netByTrace := make(map[string]string, len(nets))
	for _, n := range nets {
		netByTrace[n.Trace] = n.ID
	}

	entries := make([]Entry, 0, len(comps))
	for _, c := range comps {
		value := c.Value()
		if value == "" {
			value = "Unknown"
		}
		entries = append(entries, Entry{
			ID:    c.ID,
			Type:  c.Type,
			Value: value,
			Pins:  Pins(c.ID, edges, netByTrace),
		})
	}

	groups := Groups(comps, edges)
	logger.Info("netlist: %d nets, %d connected groups", len(nets), len(groups))

	return Netlist{
		Components: entries,
		Nets:       nets,
		Groups:     groups,
	}
}

// Groups returns the connected components of the graph whose vertices are
// components and whose edges are component-component links. Isolated
// components are omitted. Groups are ordered by their first member's
// position in comps, and members keep comps order.
func Groups(comps []component.Component, edges []connectivity.Edge) [][]string {
	index := component.Index(comps)

	g := simple.NewUndirectedGraph()
	for i := range comps {
		g.AddNode(simple.Node(int64(i)))
	}
	for _, e := range edges {
		if e.Kind != connectivity.ComponentComponent {
			continue
		}
		a, okA := index[e.Pair[0]]
		b, okB := index[e.Pair[1]]
		if !okA || !okB || a == b {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(int64(a)), simple.Node(int64(b))))
	}

	var clusters [][]int
	for _, cc := range topo.ConnectedComponents(g) {
		if len(cc) < 2 {
			continue
		}
		members := make([]int, 0, len(cc))
		for _, n := range cc {
			members = append(members, int(n.ID()))
		}
		sort.Ints(members)
		clusters = append(clusters, members)
	}
	sort.Slice(clusters, func(i, j int) bool {
		return clusters[i][0] < clusters[j][0]
	})

	groups := make([][]string, 0, len(clusters))
	for _, members := range clusters {
		ids := make([]string, len(members))
		for k, m := range members {
			ids[k] = comps[m].ID
		}
		groups = append(groups, ids)
	}
	return groups
}
