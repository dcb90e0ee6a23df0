package log

import (
	"os"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("debugEnabled", func() {
	var (
		saved string
		had   bool
	)

	BeforeEach(func() {
		saved, had = os.LookupEnv("DEBUG")
	})

	AfterEach(func() {
		if had {
			os.Setenv("DEBUG", saved)
		} else {
			os.Unsetenv("DEBUG")
		}
	})

	Specify("unset", func() {
		os.Unsetenv("DEBUG")
		Expect(debugEnabled()).To(BeFalse())
	})

	Specify("true", func() {
		os.Setenv("DEBUG", "true")
		Expect(debugEnabled()).To(BeTrue())

		os.Setenv("DEBUG", "1")
		Expect(debugEnabled()).To(BeTrue())
	})

	Specify("false", func() {
		os.Setenv("DEBUG", "false")
		Expect(debugEnabled()).To(BeFalse())
	})

	Specify("not a bool", func() {
		os.Setenv("DEBUG", "yes please")
		Expect(debugEnabled()).To(BeFalse())
	})
})
