package utils

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Truncate", func() {
	It("returns the string unchanged when within the limit", func() {
		Expect(Truncate("short", 10)).To(Equal("short"))
	})

	It("returns the string unchanged when exactly at the limit", func() {
		Expect(Truncate("12345", 5)).To(Equal("12345"))
	})

	It("truncates with ellipsis when over the limit", func() {
		result := Truncate("this is a long string", 10)
		Expect(result).To(Equal("this is a ..."))
	})

	It("does not split multi-byte runes", func() {
		result := Truncate("héllo wörld", 7)
		Expect(result).To(Equal("héllo w..."))
	})
})

var _ = Describe("CollapseWhitespace", func() {
	It("flattens newlines and repeated spaces", func() {
		Expect(CollapseWhitespace("a\n  b\tc")).To(Equal("a b c"))
	})

	It("trims leading and trailing whitespace", func() {
		Expect(CollapseWhitespace("  padded  ")).To(Equal("padded"))
	})

	It("returns empty string for all-whitespace input", func() {
		Expect(CollapseWhitespace(" \n\t ")).To(Equal(""))
	})
})
