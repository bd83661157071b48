package gsst

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/bsm/spherekit/index"
	"github.com/bsm/spherekit/loop"
	"github.com/golang/geo/s2"
)

var _ = Describe("Reader/Writer", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "spherekit-index-gsst-test")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should write/read", func() {
		fname := filepath.Join(dir, "data.sst")

		w, err := Create(fname, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Put([]byte("key1"), []byte("testdata"))).To(Succeed())
		Expect(w.Put([]byte("key2"), []byte("more"))).To(Succeed())
		Expect(w.Close()).To(Succeed())

		r, err := Open(fname, nil)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()

		Expect(r.Get([]byte("key1"))).To(Equal([]byte("testdata")))
		Expect(r.Get([]byte("key2"))).To(Equal([]byte("more")))
		Expect(r.Get([]byte("key3"))).To(BeNil())
	})

	It("should serve an index", func() {
		fname := filepath.Join(dir, "index.sst")

		w, err := Create(fname, nil)
		Expect(err).NotTo(HaveOccurred())

		l, err := loop.New([]s2.Point{
			s2.PointFromLatLng(s2.LatLngFromDegrees(50, 10)),
			s2.PointFromLatLng(s2.LatLngFromDegrees(50, 0)),
			s2.PointFromLatLng(s2.LatLngFromDegrees(45, 0)),
			s2.PointFromLatLng(s2.LatLngFromDegrees(45, 10)),
		})
		Expect(err).NotTo(HaveOccurred())

		b := index.NewBuilder(w, &index.Options{MaxLevel: 8, TempDir: dir})
		Expect(b.Add(7, l)).To(Succeed())
		Expect(b.Close()).To(Succeed())

		store, err := Open(fname, nil)
		Expect(err).NotTo(HaveOccurred())

		r, err := index.NewReader(store)
		Expect(err).NotTo(HaveOccurred())
		defer r.Close()

		Expect(r.Lookup(s2.PointFromLatLng(s2.LatLngFromDegrees(47, 5)))).To(Equal([]uint64{7}))
		Expect(r.Lookup(s2.PointFromLatLng(s2.LatLngFromDegrees(40, 5)))).To(BeEmpty())
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "spherekit/index/gsst")
}
