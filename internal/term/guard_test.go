package term

import (
	"bytes"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) { return 0, errors.New("tty gone") }

var _ = Describe("Guard", func() {
	var (
		buf   *bytes.Buffer
		guard *Guard
		fatal []error
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		guard = NewGuard(buf)
		fatal = nil
		guard.OnFatal(func(err error) { fatal = append(fatal, err) })
	})

	Describe("Enter", func() {
		It("switches to the alternate screen with a hidden, homed cursor", func() {
			Expect(guard.Enter()).To(Succeed())
			Expect(guard.Active()).To(BeTrue())
			Expect(buf.String()).To(Equal(enterAltScreen + ansi.HideCursor + ansi.EraseEntireScreen + ansi.CursorHomePosition))
		})

		It("propagates write failures", func() {
			g := NewGuard(brokenWriter{})
			Expect(g.Enter()).To(HaveOccurred())
			Expect(g.Active()).To(BeFalse())
		})
	})

	Describe("Leave", func() {
		It("restores the normal screen and shows the cursor", func() {
			Expect(guard.Enter()).To(Succeed())
			buf.Reset()
			Expect(guard.Leave()).To(Succeed())
			Expect(guard.Active()).To(BeFalse())
			Expect(buf.String()).To(Equal(leaveAltScreen + ansi.ShowCursor))
		})

		It("writes the restore sequence only once", func() {
			Expect(guard.Enter()).To(Succeed())
			Expect(guard.Leave()).To(Succeed())
			Expect(guard.Leave()).To(Succeed())
			Expect(guard.Close()).To(Succeed())
			Expect(strings.Count(buf.String(), leaveAltScreen)).To(Equal(1))
		})

		It("can re-enter after leaving", func() {
			Expect(guard.Enter()).To(Succeed())
			Expect(guard.Leave()).To(Succeed())
			Expect(guard.Enter()).To(Succeed())
			Expect(guard.Close()).To(Succeed())
			Expect(strings.Count(buf.String(), leaveAltScreen)).To(Equal(2))
		})
	})

	Describe("Close", func() {
		run := func(g *Guard, fail bool) (err error) {
			defer g.Close()
			if err := g.Enter(); err != nil {
				return err
			}
			if fail {
				return errors.New("decode failed")
			}
			return nil
		}

		It("restores the terminal when the scope exits with an error", func() {
			Expect(run(guard, true)).To(MatchError("decode failed"))
			Expect(buf.String()).To(HaveSuffix(leaveAltScreen + ansi.ShowCursor))
			Expect(guard.Active()).To(BeFalse())
			Expect(fatal).To(BeEmpty())
		})

		It("restores the terminal even if Enter never ran", func() {
			Expect(guard.Close()).To(Succeed())
			Expect(buf.String()).To(ContainSubstring(leaveAltScreen))
		})

		It("hands restore failures to the fatal handler", func() {
			g := NewGuard(brokenWriter{})
			var got []error
			g.OnFatal(func(err error) { got = append(got, err) })

			Expect(g.Close()).To(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].Error()).To(ContainSubstring("tty gone"))

			Expect(g.Close()).To(Succeed())
			Expect(got).To(HaveLen(1))
		})
	})
})

var _ = Describe("Columns", func() {
	It("falls back when the file is not a terminal", func() {
		f, err := os.CreateTemp(GinkgoT().TempDir(), "out")
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		Expect(IsTerminal(f)).To(BeFalse())
		Expect(Columns(f, 100)()).To(Equal(100))
		Expect(Columns(f, 0)()).To(Equal(DefaultColumns))
	})

	It("reports no row limit when the file is not a terminal", func() {
		f, err := os.CreateTemp(GinkgoT().TempDir(), "out")
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()

		Expect(Rows(f)()).To(Equal(0))
	})
})
