package index

import (
	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
)

var _ = Describe("InMemStore", func() {
	var subject *InMemStore

	BeforeEach(func() {
		subject = NewInMemStore()
	})

	AfterEach(func() {
		Expect(subject.Close()).To(Succeed())
	})

	It("should write/read", func() {
		value := []byte("x")
		Expect(subject.Put([]byte("k1"), value)).To(Succeed())
		Expect(subject.Put([]byte("k2"), value)).To(Succeed())
		value[0] = 'z'

		Expect(subject.Len()).To(Equal(2))
		Expect(subject.Get([]byte("k1"))).To(Equal([]byte("x")))
		Expect(subject.Get([]byte("k2"))).To(Equal([]byte("x")))
		Expect(subject.Get([]byte("k3"))).To(BeNil())
	})

	It("should reject out-of-order puts", func() {
		Expect(subject.Put([]byte("k2"), nil)).To(Succeed())
		Expect(subject.Put([]byte("k1"), nil)).To(MatchError(`index: attempted an out-of-order put, "k1" must be > "k2"`))
		Expect(subject.Put([]byte("k2"), nil)).To(HaveOccurred())
		Expect(subject.Put([]byte("k3"), nil)).To(Succeed())
	})
})
