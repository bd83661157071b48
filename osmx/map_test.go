package osmx

import (
	"strings"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	osm "github.com/glaslos/go-osm"
	"github.com/golang/geo/s2"
)

var _ = Describe("Map", func() {
	var subject *Map

	It("should require at least one relation to wrap", func() {
		_, err := WrapMap(new(osm.Map))
		Expect(err).To(MatchError(`osmx: map contains no relations`))
	})

	It("should require a relation with ways", func() {
		_, err := WrapMap(&osm.Map{
			Relations: []osm.Relation{
				{Members: []osm.Member{{Type: "notway"}}},
				{Members: []osm.Member{{Type: "alsonotway"}}},
			},
		})
		Expect(err).To(MatchError(`osmx: map contains no valid relations`))
	})

	It("should wrap the relation with way members", func() {
		var err error
		subject, err = WrapMap(&osm.Map{
			Relations: []osm.Relation{
				{Members: []osm.Member{{Type: "notway"}}},
				{Members: []osm.Member{{Type: "way"}}},
			},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(subject.Rel()).To(Equal(&osm.Relation{
			Members: []osm.Member{{Type: "way"}},
		}))
	})

	It("should retrieve tag", func() {
		subject = &Map{
			rel: osm.Relation{
				Tags: []osm.Tag{
					{Key: "ISO3166-1:alpha2", Value: "GB"},
				},
			},
		}
		Expect(subject.Tag("ISO3166-1:alpha2")).To(Equal("GB"))
		Expect(subject.Tag("notfound")).To(Equal(""))
	})

	It("should decode and extract polygons", func() {
		var err error
		subject, err = Decode(strings.NewReader(testXML))
		Expect(err).NotTo(HaveOccurred())
		Expect(subject.Tag("ISO3166-1:alpha2")).To(Equal("XC"))

		node, err := subject.FindNode(3)
		Expect(err).NotTo(HaveOccurred())
		Expect(node.Lat).To(Equal(37.0))
		_, err = subject.FindNode(99)
		Expect(err).To(MatchError("osmx: node #99 not found"))

		way, err := subject.FindWay(103)
		Expect(err).NotTo(HaveOccurred())
		Expect(way.Nds).To(HaveLen(5))
		_, err = subject.FindWay(99)
		Expect(err).To(MatchError("osmx: way #99 not found"))

		loops, err := subject.ExtractLoops()
		Expect(err).NotTo(HaveOccurred())
		Expect(loops).To(HaveLen(2))

		poly, err := subject.GeneratePolygon()
		Expect(err).NotTo(HaveOccurred())
		Expect(poly.Shells()).To(HaveLen(1))
		Expect(poly.Holes()).To(HaveLen(1))
		Expect(poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(37.5, -103)))).To(BeTrue())
		Expect(poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(39, -105)))).To(BeFalse())
	})
})

const testXML = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
 <node id="1" lat="41" lon="-109"/>
 <node id="2" lat="41" lon="-102"/>
 <node id="3" lat="37" lon="-102"/>
 <node id="4" lat="37" lon="-109"/>
 <node id="11" lat="40" lon="-104"/>
 <node id="12" lat="40" lon="-107"/>
 <node id="13" lat="38" lon="-107"/>
 <node id="14" lat="38" lon="-104"/>
 <way id="101"><nd ref="1"/><nd ref="2"/><nd ref="3"/></way>
 <way id="102"><nd ref="3"/><nd ref="4"/><nd ref="1"/></way>
 <way id="103"><nd ref="11"/><nd ref="12"/><nd ref="13"/><nd ref="14"/><nd ref="11"/></way>
 <relation id="201">
  <member type="way" ref="101" role="outer"/>
  <member type="way" ref="102" role="outer"/>
  <member type="way" ref="103" role="inner"/>
  <tag k="ISO3166-1:alpha2" v="XC"/>
 </relation>
</osm>`
