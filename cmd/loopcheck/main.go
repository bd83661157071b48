// Command loopcheck validates the polygons of a GeoJSON FeatureCollection
// and reports the features containing a point.
//
// Usage:
//
//	loopcheck -input regions.geojson -point 39.1,-105.3 -index regions.sst
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/bsm/spherekit/geomconv"
	"github.com/bsm/spherekit/index"
	"github.com/bsm/spherekit/index/lsst"
	"github.com/golang/geo/s2"
	"github.com/golang/glog"
)

var flags struct {
	input    string
	point    string
	indexOut string
	maxLevel int
	minLevel int
}

func init() {
	flag.StringVar(&flags.input, "input", "-", "GeoJSON FeatureCollection file, - for STDIN")
	flag.StringVar(&flags.point, "point", "", "Optional lat,lng to look up")
	flag.StringVar(&flags.indexOut, "index", "", "Optional SST file to store the index, kept in memory otherwise")
	flag.IntVar(&flags.minLevel, "min-level", 4, "Coarsest indexed cell level")
	flag.IntVar(&flags.maxLevel, "max-level", 12, "Finest indexed cell level")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	if err := run(os.Stdout); err != nil {
		glog.Exitf("loopcheck: %v", err)
	}
}

func run(out io.Writer) error {
	data, err := readInput(flags.input)
	if err != nil {
		return err
	}

	features, err := geomconv.DecodeFeatures(data)
	if err != nil {
		return err
	}
	glog.Infof("validated %d polygon features", len(features))

	if flags.point == "" {
		return nil
	}

	pt, err := parsePoint(flags.point)
	if err != nil {
		return err
	}

	ids, err := lookup(features, pt)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return err
		}
	}
	return nil
}

func readInput(fname string) ([]byte, error) {
	if fname == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(fname)
}

func parsePoint(s string) (s2.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return s2.Point{}, fmt.Errorf("invalid point %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return s2.Point{}, fmt.Errorf("invalid point %q", s)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return s2.Point{}, fmt.Errorf("invalid point %q", s)
	}
	return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng)), nil
}

// loopID packs the feature and loop positions.
func loopID(feature, loop int) uint64 { return uint64(feature)<<20 | uint64(loop) }

// lookup indexes all loops and returns the IDs of features containing pt.
func lookup(features []geomconv.Feature, pt s2.Point) ([]string, error) {
	opts := &index.Options{MinLevel: flags.minLevel, MaxLevel: flags.maxLevel}

	var store index.StoreWriter = index.NewInMemStore()
	if flags.indexOut != "" {
		w, err := lsst.CreateFile(flags.indexOut, nil)
		if err != nil {
			return nil, err
		}
		store = w
	}

	builder := index.NewBuilder(store, opts)
	for i, f := range features {
		for j, l := range f.Polygon {
			if err := builder.Add(loopID(i, j), l); err != nil {
				_ = builder.Close()
				return nil, err
			}
		}
	}
	if err := builder.Close(); err != nil {
		return nil, err
	}
	glog.V(1).Infof("indexed %d features", len(features))

	var rs index.StoreReader
	if flags.indexOut != "" {
		r, err := lsst.OpenFile(flags.indexOut, nil)
		if err != nil {
			return nil, err
		}
		rs = r
	} else {
		rs = store.(*index.InMemStore)
	}

	reader, err := index.NewReader(rs)
	if err != nil {
		_ = rs.Close()
		return nil, err
	}
	defer reader.Close()

	loopIDs, err := reader.Lookup(pt)
	if err != nil {
		return nil, err
	}

	// a feature contains the point if an odd number of its loops do
	counts := make(map[int]int)
	for _, id := range loopIDs {
		counts[int(id>>20)]++
	}

	var res []string
	for i, n := range counts {
		if n%2 == 1 {
			res = append(res, features[i].ID)
		}
	}
	sort.Strings(res)
	return res, nil
}
