// Package geomconv converts GeoJSON, WKB and go-geom geometries to polygons
// and back.
package geomconv

import (
	"math"

	"github.com/bsm/spherekit/geo"
	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// DecodeGeoJSON parses a GeoJSON Polygon or MultiPolygon geometry.
func DecodeGeoJSON(data []byte) (geo.Polygon, error) {
	var g geom.T
	if err := geojson.Unmarshal(data, &g); err != nil {
		return nil, errors.Wrap(err, "geomconv: decode geojson")
	}
	return PolygonFromGeom(g)
}

// DecodeWKB parses a WKB Polygon or MultiPolygon geometry.
func DecodeWKB(data []byte) (geo.Polygon, error) {
	g, err := wkb.Unmarshal(data)
	if err != nil {
		return nil, errors.Wrap(err, "geomconv: decode wkb")
	}
	return PolygonFromGeom(g)
}

// EncodeGeoJSON encodes the polygon as a GeoJSON geometry.
func EncodeGeoJSON(p geo.Polygon) ([]byte, error) {
	g, err := GeomFromPolygon(p)
	if err != nil {
		return nil, err
	}
	return geojson.Marshal(g)
}

// EncodeWKB encodes the polygon as little-endian WKB.
func EncodeWKB(p geo.Polygon) ([]byte, error) {
	g, err := GeomFromPolygon(p)
	if err != nil {
		return nil, err
	}
	return wkb.Marshal(g, wkb.NDR)
}

// PolygonFromGeom converts a *geom.Polygon or a *geom.MultiPolygon. Every
// ring becomes a loop, nesting is derived from containment.
func PolygonFromGeom(g geom.T) (geo.Polygon, error) {
	var loops []*loop.Loop

	switch v := g.(type) {
	case *geom.Polygon:
		if err := appendRings(&loops, v); err != nil {
			return nil, err
		}
	case *geom.MultiPolygon:
		for i := 0; i < v.NumPolygons(); i++ {
			if err := appendRings(&loops, v.Polygon(i)); err != nil {
				return nil, err
			}
		}
	default:
		return nil, errors.Errorf("geomconv: cannot convert geometry of type %T", g)
	}

	if len(loops) == 0 {
		return nil, errors.New("geomconv: geometry has no rings")
	}
	return geo.NewPolygon(loops...)
}

func appendRings(loops *[]*loop.Loop, p *geom.Polygon) error {
	for i := 0; i < p.NumLinearRings(); i++ {
		l, err := LoopFromRing(p.LinearRing(i))
		if err != nil {
			return err
		}
		*loops = append(*loops, l)
	}
	return nil
}

// LoopFromRing converts a ring to a loop enclosing the smaller of the two
// regions bounded by the ring.
func LoopFromRing(r *geom.LinearRing) (*loop.Loop, error) {
	n := r.NumCoords()
	if n != 0 && coordsEqual(r.Coord(0), r.Coord(n-1)) {
		n--
	}
	if n < 3 {
		return nil, errors.Errorf("geomconv: cannot convert ring with %d distinct coordinates", n)
	}

	// Orientation is not restricted in WKB or GeoJSON. The planar shoelace
	// formula is a fast guess, it fails across the antimeridian and around
	// the poles, so the bound is checked as well.
	reverse := isClockwise(r, n)
	l, err := loopFromRing(r, n, reverse)
	if err != nil {
		return nil, errors.Wrap(err, "geomconv")
	}
	if l.Bound().Area() >= 2*math.Pi {
		if l, err = loopFromRing(r, n, !reverse); err != nil {
			return nil, errors.Wrap(err, "geomconv")
		}
	}
	return l, nil
}

// GeomFromPolygon converts a polygon into a *geom.Polygon, or into a
// *geom.MultiPolygon when it has more than one shell. Holes are attached
// to the shells that directly contain them and oriented clockwise.
func GeomFromPolygon(p geo.Polygon) (geom.T, error) {
	shells := p.Shells()
	if len(shells) == 0 {
		return nil, errors.New("geomconv: polygon has no shells")
	}

	polys := make([]*geom.Polygon, 0, len(shells))
	for _, shell := range shells {
		rings := [][]geom.Coord{ringCoords(shell, false)}
		for _, hole := range p.Holes() {
			if hole.Depth() == shell.Depth()+1 && shell.Contains(hole) {
				rings = append(rings, ringCoords(hole, true))
			}
		}

		poly, err := geom.NewPolygon(geom.XY).SetCoords(rings)
		if err != nil {
			return nil, errors.Wrap(err, "geomconv")
		}
		polys = append(polys, poly)
	}

	if len(polys) == 1 {
		return polys[0], nil
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for _, poly := range polys {
		if err := mp.Push(poly); err != nil {
			return nil, errors.Wrap(err, "geomconv")
		}
	}
	return mp, nil
}

// --------------------------------------------------------------------

func pointFromCoord(c geom.Coord) s2.Point {
	// GeoJSON and WKB coordinates are [lng, lat]
	return s2.PointFromLatLng(s2.LatLngFromDegrees(c.Y(), c.X()))
}

func coordsEqual(a, b geom.Coord) bool {
	return a.X() == b.X() && a.Y() == b.Y()
}

// isClockwise applies the shoelace formula to the first n coordinates.
func isClockwise(r *geom.LinearRing, n int) bool {
	var a float64
	for i := 0; i < n; i++ {
		p1 := r.Coord(i)
		p2 := r.Coord((i + 1) % n)
		a += (p2.X() - p1.X()) * (p1.Y() + p2.Y())
	}
	return a > 0
}

func loopFromRing(r *geom.LinearRing, n int, reverse bool) (*loop.Loop, error) {
	pts := make([]s2.Point, n)
	for i := 0; i < n; i++ {
		if reverse {
			pts[i] = pointFromCoord(r.Coord(n - 1 - i))
		} else {
			pts[i] = pointFromCoord(r.Coord(i))
		}
	}
	return loop.New(pts)
}

func ringCoords(l *loop.Loop, reverse bool) []geom.Coord {
	n := l.NumVertices()
	coords := make([]geom.Coord, 0, n+1)
	for i := 0; i < n; i++ {
		v := l.Vertex(i)
		if reverse {
			v = l.Vertex(n - 1 - i)
		}
		ll := s2.LatLngFromPoint(v)
		coords = append(coords, geom.Coord{ll.Lng.Degrees(), ll.Lat.Degrees()})
	}
	return append(coords, coords[0])
}
