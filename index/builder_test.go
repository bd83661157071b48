package index

import (
	"math/rand"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
)

var _ = Describe("Builder/Reader", func() {
	var store *InMemStore
	var loops map[uint64]*loop.Loop

	build := func(o *Options) *Reader {
		b := NewBuilder(store, o)
		for _, id := range []uint64{3, 1, 2} {
			Expect(b.Add(id, loops[id])).To(Succeed())
		}
		Expect(b.Close()).To(Succeed())

		r, err := NewReader(store)
		Expect(err).NotTo(HaveOccurred())
		return r
	}

	point := func(lat, lng float64) s2.Point {
		return s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lng))
	}

	BeforeEach(func() {
		store = NewInMemStore()
		loops = map[uint64]*loop.Loop{
			1: mustLoop(41, -102, 41, -109, 37, -109, 37, -102),
			2: mustLoop(40, -104, 40, -107, 38, -107, 38, -104),
			3: mustLoop(50, 10, 50, 0, 45, 0, 45, 10),
		}
	})

	It("should write entries", func() {
		r := build(&Options{MaxLevel: 8})
		defer r.Close()

		Expect(store.Len()).To(BeNumerically(">", 10))
		Expect(store.Get(metaKey)).To(Equal([]byte{4, 8}))
		Expect(store.Get(loopKey(1))).NotTo(BeEmpty())
		Expect(store.Get(loopKey(4))).To(BeNil())
	})

	It("should lookup points", func() {
		r := build(&Options{MaxLevel: 8})
		defer r.Close()

		Expect(r.Lookup(point(37.5, -103))).To(Equal([]uint64{1}))
		Expect(r.Lookup(point(39, -105))).To(Equal([]uint64{1, 2}))
		Expect(r.Lookup(point(47, 5))).To(Equal([]uint64{3}))
		Expect(r.Lookup(point(-20, 40))).To(BeEmpty())
	})

	It("should lookup cell centers", func() {
		r := build(&Options{MaxLevel: 8})
		defer r.Close()

		for _, level := range []int{8, 12, 20, s2.MaxLevel} {
			cell := s2.CellFromCellID(s2.CellIDFromLatLng(s2.LatLngFromDegrees(39, -105)).Parent(level))
			Expect(r.Lookup(cell.Center())).To(Equal([]uint64{1, 2}), "level %d", level)
		}
	})

	It("should match brute-force containment", func() {
		r := build(&Options{MinLevel: 6, MaxLevel: 9, Compression: NoCompression})
		defer r.Close()

		rnd := rand.New(rand.NewSource(1))
		for i := 0; i < 300; i++ {
			p := point(35+rnd.Float64()*8, -111+rnd.Float64()*11)

			var expected []uint64
			for _, id := range []uint64{1, 2, 3} {
				if loops[id].ContainsPoint(p) {
					expected = append(expected, id)
				}
			}
			Expect(r.Lookup(p)).To(Equal(expected))
		}
	})

	It("should retrieve loops", func() {
		r := build(&Options{MaxLevel: 7})
		defer r.Close()

		l, err := r.Loop(2)
		Expect(err).NotTo(HaveOccurred())
		Expect(l.Vertices()).To(Equal(loops[2].Vertices()))

		_, err = r.Loop(4)
		Expect(err).To(MatchError(errLoopNotFound))
	})

	It("should reject duplicate IDs", func() {
		b := NewBuilder(store, &Options{MaxLevel: 6})
		Expect(b.Add(1, loops[1])).To(Succeed())
		Expect(b.Add(1, loops[2])).To(Succeed())
		Expect(b.Close()).To(MatchError("index: duplicate loop ID 1"))
	})

	It("should reject use after close", func() {
		b := NewBuilder(store, nil)
		Expect(b.Close()).To(Succeed())
		Expect(b.Add(1, loops[1])).To(MatchError(errClosed))
		Expect(b.Close()).To(MatchError(errClosed))
	})

	It("should require meta data", func() {
		_, err := NewReader(NewInMemStore())
		Expect(err).To(MatchError(errMissingMeta))

		bad := NewInMemStore()
		Expect(bad.Put(metaKey, []byte{9, 3})).To(Succeed())
		_, err = NewReader(bad)
		Expect(err).To(MatchError(errBadMeta))
	})
})
