package geo

import (
	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
)

var _ = Describe("Polygon", func() {
	var shell, hole, island, other *loop.Loop

	BeforeEach(func() {
		shell = colorado()
		hole = mustLoop(
			s2.LatLngFromDegrees(40, -104),
			s2.LatLngFromDegrees(40, -107),
			s2.LatLngFromDegrees(38, -107),
			s2.LatLngFromDegrees(38, -104),
		)
		island = mustLoop(
			s2.LatLngFromDegrees(39.5, -105),
			s2.LatLngFromDegrees(39.5, -106),
			s2.LatLngFromDegrees(38.5, -106),
			s2.LatLngFromDegrees(38.5, -105),
		)
		other = mustLoop(
			s2.LatLngFromDegrees(42, -100),
			s2.LatLngFromDegrees(42, -105),
			s2.LatLngFromDegrees(39, -105),
			s2.LatLngFromDegrees(39, -100),
		)
	})

	It("should assign depths", func() {
		poly, err := NewPolygon(island, shell, hole)
		Expect(err).NotTo(HaveOccurred())
		Expect(poly).To(HaveLen(3))

		Expect(shell.Depth()).To(Equal(0))
		Expect(hole.Depth()).To(Equal(1))
		Expect(island.Depth()).To(Equal(2))
		Expect(poly.Shells()).To(ConsistOf(shell, island))
		Expect(poly.Holes()).To(ConsistOf(hole))
	})

	It("should contain points", func() {
		poly, err := NewPolygon(shell, hole, island)
		Expect(err).NotTo(HaveOccurred())

		Expect(poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(37.5, -103)))).To(BeTrue())
		Expect(poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(38.2, -105.5)))).To(BeFalse())
		Expect(poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(39, -105.5)))).To(BeTrue())
		Expect(poly.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(45, -105.5)))).To(BeFalse())
	})

	It("should reject overlapping loops", func() {
		_, err := NewPolygon(shell, other)
		Expect(err).To(MatchError("geo: loops 0 and 1 overlap"))
	})

	It("should reject loops with assigned depths", func() {
		_, err := NewPolygon(shell)
		Expect(err).NotTo(HaveOccurred())

		_, err = NewPolygon(hole, shell)
		Expect(err).To(MatchError("geo: loop 1: already part of a polygon"))
		Expect(hole.HasDepth()).To(BeFalse())

		poly, err := NewPolygon(hole, island)
		Expect(err).NotTo(HaveOccurred())
		Expect(poly.Holes()).To(ConsistOf(island))
	})

	It("should reject repeated loops", func() {
		_, err := NewPolygon(shell, hole, shell)
		Expect(err).To(MatchError("geo: loops 0 and 2 are the same"))
		Expect(shell.HasDepth()).To(BeFalse())
		Expect(hole.HasDepth()).To(BeFalse())
	})

	It("should bound shells", func() {
		poly, err := NewPolygon(shell, hole)
		Expect(err).NotTo(HaveOccurred())
		Expect(poly.Bound()).To(Equal(shell.Bound()))
	})

	It("should fit cells", func() {
		poly, err := NewPolygon(shell, hole)
		Expect(err).NotTo(HaveOccurred())

		cu := FitLoop(shell, nil, 7)
		cu.Normalize()
		Expect(poly.Cells(7)).To(Equal(cu))
	})

	It("should marshal/unmarshal", func() {
		poly, err := NewPolygon(shell, hole)
		Expect(err).NotTo(HaveOccurred())

		bin, err := poly.MarshalBinary()
		Expect(err).NotTo(HaveOccurred())
		Expect(bin).To(HaveLen(4 + 2*(4+100)))

		var res Polygon
		Expect(res.UnmarshalBinary(bin)).To(Succeed())
		Expect(res).To(HaveLen(2))
		Expect(res[0].Vertices()).To(Equal(shell.Vertices()))
		Expect(res[1].Vertices()).To(Equal(hole.Vertices()))
		Expect(res[1].IsHole()).To(BeTrue())

		Expect(res.UnmarshalBinary(bin[:len(bin)-1])).To(HaveOccurred())
		Expect(res.UnmarshalBinary(nil)).To(HaveOccurred())
	})
})
