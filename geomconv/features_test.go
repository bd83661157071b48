package geomconv

import (
	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
)

var _ = Describe("DecodeFeatures", func() {
	It("should decode polygon features", func() {
		features, err := DecodeFeatures([]byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":"co","properties":{"name":"Colorado"},"geometry":{"type":"Polygon","coordinates":[
				[[-109,37],[-102,37],[-102,41],[-109,41],[-109,37]]
			]}},
			{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}},
			{"type":"Feature","properties":{},"geometry":{"type":"MultiPolygon","coordinates":[
				[[[0,45],[10,45],[10,50],[0,50],[0,45]]],
				[[[20,45],[30,45],[30,50],[20,50],[20,45]]]
			]}}
		]}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(features).To(HaveLen(2))

		Expect(features[0].ID).To(Equal("co"))
		Expect(features[0].Properties).To(HaveKeyWithValue("name", "Colorado"))
		Expect(features[0].Polygon.ContainsPoint(point(39, -105))).To(BeTrue())

		Expect(features[1].ID).To(Equal("2"))
		Expect(features[1].Polygon.Shells()).To(HaveLen(2))
		Expect(features[1].Polygon.ContainsPoint(point(47, 25))).To(BeTrue())
	})

	It("should reject invalid features", func() {
		_, err := DecodeFeatures([]byte(`{"type":"FeatureCollection","features":[
			{"type":"Feature","id":7,"properties":{},"geometry":{"type":"Polygon","coordinates":[
				[[0,0],[10,10],[10,0],[0,10],[0,0]]
			]}}
		]}`))
		Expect(err).To(MatchError(ContainSubstring("geomconv: feature 7: geomconv: loop: edges")))

		_, err = DecodeFeatures([]byte(`[`))
		Expect(err).To(MatchError(ContainSubstring("geomconv: decode features")))
	})
})
