package geo

import (
	"math/rand"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
)

var _ = Describe("Loop", func() {
	var subject *loop.Loop

	BeforeEach(func() {
		subject = colorado()
	})

	DescribeTable("should show overlaps",
		func(cell s2.Cell, o Overlap) {
			Expect(LoopOverlap(subject, cell)).To(Equal(o))
		},

		// https://codepen.io/sdinh1993/pen/MoXLZB
		Entry("487", s2.CellFromCellID(s2.CellIDFromToken("487")), OverlapNone),
		Entry("874", s2.CellFromCellID(s2.CellIDFromToken("874")), OverlapContainedByCell),
		Entry("877", s2.CellFromCellID(s2.CellIDFromToken("877")), OverlapPartial),
		Entry("87174", s2.CellFromCellID(s2.CellIDFromToken("87174")), OverlapNone),
		Entry("87407", s2.CellFromCellID(s2.CellIDFromToken("87407")), OverlapContainsCell),
	)

	It("should fill loop", func() {
		cu := FitLoop(subject, nil, 7)
		cu.Normalize()

		// https://codepen.io/sdinh1993/pen/EXRMxB/
		Expect(cu).To(Equal(s2.CellUnion{
			s2.CellIDFromToken("8708c"),
			s2.CellIDFromToken("87094"),
			s2.CellIDFromToken("870b4"),
			s2.CellIDFromToken("870bc"),
			s2.CellIDFromToken("870d"),
			s2.CellIDFromToken("870f"),
			s2.CellIDFromToken("8711"),
			s2.CellIDFromToken("8713"),
			s2.CellIDFromToken("8715"),
			s2.CellIDFromToken("87164"),
			s2.CellIDFromToken("8716c"),
			s2.CellIDFromToken("8739"),
			s2.CellIDFromToken("873a4"),
			s2.CellIDFromToken("873bc"),
			s2.CellIDFromToken("873c4"),
			s2.CellIDFromToken("873dc"),
			s2.CellIDFromToken("873f"),
			s2.CellIDFromToken("8744"),
			s2.CellIDFromToken("875ac"),
			s2.CellIDFromToken("875b4"),
			s2.CellIDFromToken("876c"),
			s2.CellIDFromToken("87714"),
			s2.CellIDFromToken("8771c"),
			s2.CellIDFromToken("8773"),
			s2.CellIDFromToken("87744"),
			s2.CellIDFromToken("8774c"),
			s2.CellIDFromToken("8776c"),
		}))

		for _, cellID := range cu {
			Expect(cellID.Level()).To(BeNumerically("<=", 7))
			Expect(subject.IntersectsCell(s2.CellFromCellID(cellID))).To(BeTrue())
		}

		rnd := rand.New(rand.NewSource(1))
		for i := 0; i < 200; i++ {
			p := s2.PointFromLatLng(s2.LatLngFromDegrees(37+rnd.Float64()*4, -109+rnd.Float64()*7))
			Expect(cu.ContainsPoint(p)).To(BeTrue())
		}
		Expect(cu.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(30, -90)))).To(BeFalse())
	})

	It("should stop iterating", func() {
		var n int
		FitLoopDo(subject, 7, func(_ s2.CellID) bool {
			n++
			return n < 3
		})
		Expect(n).To(Equal(3))
	})

	It("should print overlaps", func() {
		Expect(OverlapPartial.String()).To(Equal("partial"))
		Expect(OverlapNone.String()).To(Equal("none"))
	})
})
