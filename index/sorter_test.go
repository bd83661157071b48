package index

import (
	"io"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
)

var _ = Describe("sorter", func() {
	var subject *sorter

	BeforeEach(func() {
		subject = newSorter("")
	})

	AfterEach(func() {
		_ = subject.Close()
	})

	It("should close", func() {
		Expect(subject.Close()).To(Succeed())
	})

	It("should append/sort/iterate", func() {
		Expect(subject.Append(loopKey(7), []byte("data1"))).To(Succeed())
		Expect(subject.Append(loopKey(9), []byte("data2"))).To(Succeed())
		Expect(subject.Append(loopKey(7), []byte("data3"))).To(Succeed())
		Expect(subject.Append(cellKey(5), []byte("data4"))).To(Succeed())
		Expect(subject.Append(loopKey(11), []byte("data5"))).To(Succeed())
		Expect(subject.Append(loopKey(7), []byte("data0"))).To(Succeed())

		iter, err := subject.Sort()
		Expect(err).NotTo(HaveOccurred())
		defer iter.Close()

		key, data, err := iter.NextEntry()
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal(cellKey(5)))
		Expect(data).To(Equal([][]byte{[]byte("data4")}))

		key, data, err = iter.NextEntry()
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal(loopKey(7)))
		Expect(data).To(Equal([][]byte{[]byte("data0"), []byte("data1"), []byte("data3")}))

		key, data, err = iter.NextEntry()
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal(loopKey(9)))
		Expect(data).To(Equal([][]byte{[]byte("data2")}))

		key, data, err = iter.NextEntry()
		Expect(err).NotTo(HaveOccurred())
		Expect(key).To(Equal(loopKey(11)))
		Expect(data).To(Equal([][]byte{[]byte("data5")}))

		_, _, err = iter.NextEntry()
		Expect(err).To(Equal(io.EOF))
	})

	It("should iterate empty", func() {
		iter, err := subject.Sort()
		Expect(err).NotTo(HaveOccurred())
		defer iter.Close()

		_, _, err = iter.NextEntry()
		Expect(err).To(Equal(io.EOF))
	})
})
