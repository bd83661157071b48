package osmx

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"

	"github.com/bsm/spherekit/geo"
	"github.com/bsm/spherekit/loop"
	osm "github.com/glaslos/go-osm"
)

var (
	errNoRelations   = errors.New("osmx: map contains no relations")
	errNoWayRelation = errors.New("osmx: map contains no valid relations")
)

// Map wraps osm.Map around its primary relation, the first one with way
// members.
type Map struct {
	*osm.Map
	rel osm.Relation
}

// Decode decodes OSM XML data and wraps the result.
func Decode(r io.Reader) (*Map, error) {
	parent, err := osm.Decode(r)
	if err != nil {
		return nil, err
	}
	return WrapMap(parent)
}

// WrapMap selects the primary relation and sorts nodes and ways by ID.
func WrapMap(parent *osm.Map) (*Map, error) {
	if len(parent.Relations) == 0 {
		return nil, errNoRelations
	}

	pos := slices.IndexFunc(parent.Relations, hasWays)
	if pos < 0 {
		return nil, errNoWayRelation
	}

	m := &Map{Map: parent, rel: parent.Relations[pos]}
	sort.Slice(m.Nodes, func(i, j int) bool { return m.Nodes[i].ID < m.Nodes[j].ID })
	sort.Slice(m.Ways, func(i, j int) bool { return m.Ways[i].ID < m.Ways[j].ID })
	return m, nil
}

// Tag returns the value of a relation tag, e.g. "ISO3166-1:alpha2".
func (m *Map) Tag(key string) string {
	for _, tag := range m.rel.Tags {
		if tag.Key == key {
			return tag.Value
		}
	}
	return ""
}

// Rel returns the primary relation.
func (m *Map) Rel() *osm.Relation { return &m.rel }

// FindNode finds a node by ID.
func (m *Map) FindNode(id int64) (*osm.Node, error) {
	pos := sort.Search(len(m.Nodes), func(i int) bool { return m.Nodes[i].ID >= id })
	if pos == len(m.Nodes) || m.Nodes[pos].ID != id {
		return nil, fmt.Errorf("osmx: node #%d not found", id)
	}
	return &m.Nodes[pos], nil
}

// FindWay finds a way by ID. Ways without nodes are treated as missing.
func (m *Map) FindWay(id int64) (*osm.Way, error) {
	pos := sort.Search(len(m.Ways), func(i int) bool { return m.Ways[i].ID >= id })
	if pos == len(m.Ways) || m.Ways[pos].ID != id || len(m.Ways[pos].Nds) == 0 {
		return nil, fmt.Errorf("osmx: way #%d not found", id)
	}
	return &m.Ways[pos], nil
}

// ExtractLoops joins the member ways of the relation into loops.
func (m *Map) ExtractLoops() ([]*loop.Loop, error) {
	members, err := m.memberWays()
	if err != nil {
		return nil, err
	}

	chains := members.assemble()
	loops := make([]*loop.Loop, 0, len(chains))
	for _, w := range chains {
		lp, err := w.loop()
		if err != nil {
			return nil, err
		}
		loops = append(loops, lp)
	}
	return loops, nil
}

// GeneratePolygon constructs a Polygon from the relation.
func (m *Map) GeneratePolygon() (geo.Polygon, error) {
	loops, err := m.ExtractLoops()
	if err != nil {
		return nil, err
	}
	return geo.NewPolygon(loops...)
}

// --------------------------------------------------------------------

// memberWays resolves the outer and inner way members of the relation.
func (m *Map) memberWays() (ways, error) {
	res := make(ways, 0, len(m.rel.Members))
	for _, mem := range m.rel.Members {
		if mem.Type != "way" {
			continue
		}

		ow, err := m.FindWay(mem.Ref)
		if err != nil {
			return nil, err
		}

		w := &way{role: mem.Role, nodes: make([]*osm.Node, 0, len(ow.Nds))}
		for _, nd := range ow.Nds {
			on, err := m.FindNode(nd.ID)
			if err != nil {
				return nil, err
			}
			w.nodes = append(w.nodes, on)
		}

		if w.valid() {
			res = append(res, w)
		}
	}
	return res, nil
}

func hasWays(rel osm.Relation) bool {
	for _, mem := range rel.Members {
		if mem.Type == "way" {
			return true
		}
	}
	return false
}
