package geomconv

import (
	"fmt"
	"strconv"

	"github.com/bsm/spherekit/geo"
	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
	geom "github.com/twpayne/go-geom"
)

// Feature is a polygon feature of a GeoJSON FeatureCollection.
type Feature struct {
	ID         string
	Properties map[string]interface{}
	Polygon    geo.Polygon
}

// DecodeFeatures parses a GeoJSON FeatureCollection. Features without a
// Polygon or MultiPolygon geometry are skipped. Features without an ID are
// identified by their position.
func DecodeFeatures(data []byte) ([]Feature, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "geomconv: decode features")
	}

	res := make([]Feature, 0, len(fc.Features))
	for i, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}

		id := strconv.Itoa(i)
		if f.ID != nil {
			id = fmt.Sprint(f.ID)
		}

		var rings [][][]float64
		switch f.Geometry.Type {
		case geojson.GeometryPolygon:
			rings = f.Geometry.Polygon
		case geojson.GeometryMultiPolygon:
			for _, poly := range f.Geometry.MultiPolygon {
				rings = append(rings, poly...)
			}
		default:
			continue
		}

		poly, err := polygonFromRings(rings)
		if err != nil {
			return nil, errors.Wrapf(err, "geomconv: feature %s", id)
		}
		res = append(res, Feature{ID: id, Properties: f.Properties, Polygon: poly})
	}
	return res, nil
}

func polygonFromRings(rings [][][]float64) (geo.Polygon, error) {
	p := geom.NewPolygon(geom.XY)
	for _, ring := range rings {
		flat := make([]float64, 0, 2*len(ring))
		for _, pos := range ring {
			if len(pos) < 2 {
				return nil, errors.New("geomconv: bad position")
			}
			flat = append(flat, pos[0], pos[1])
		}
		if err := p.Push(geom.NewLinearRingFlat(geom.XY, flat)); err != nil {
			return nil, err
		}
	}
	return PolygonFromGeom(p)
}
