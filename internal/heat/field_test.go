package heat_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/keyheat/internal/heat"
	"github.com/san-kum/keyheat/internal/layout"
)

// Two keys on the home row: a/A at (0,0) and b at (1,0).
const pairLayout = `<kbd name="pair"><row id="home">
  <key lower="a"><pos><x>0</x><y>0</y></pos></key>
  <key lower="b"><pos><x>1</x><y>0</y></pos></key>
</row></kbd>`

func buildKeymap(src string) *layout.Keymap {
	doc, err := layout.Parse(strings.NewReader(src))
	Expect(err).NotTo(HaveOccurred())
	km, err := layout.Build(doc)
	Expect(err).NotTo(HaveOccurred())
	return km
}

func snapshot(f *heat.Field) []float64 {
	cells := make([]float64, 0, f.Width()*f.Height())
	for j := 0; j < f.Height(); j++ {
		for i := 0; i < f.Width(); i++ {
			cells = append(cells, f.Value(i, j))
		}
	}
	return cells
}

var _ = Describe("Field", func() {
	var (
		km    *layout.Keymap
		field *heat.Field
		a, b  *layout.Key
	)

	BeforeEach(func() {
		km = buildKeymap(pairLayout)
		field = heat.NewField(km, 10, 0.35*km.HomePitch())
		var ok bool
		a, ok = km.Lookup("a")
		Expect(ok).To(BeTrue())
		b, ok = km.Lookup("b")
		Expect(ok).To(BeTrue())
	})

	It("starts empty", func() {
		Expect(field.Total()).To(BeZero())
	})

	It("keeps every cell non-negative and non-decreasing under accumulation", func() {
		keys := []*layout.Key{a, b, a, a, b}
		prev := snapshot(field)
		for _, k := range keys {
			field.Accumulate(k)
			cur := snapshot(field)
			for i := range cur {
				Expect(cur[i]).To(BeNumerically(">=", prev[i]))
				Expect(cur[i]).To(BeNumerically(">=", 0))
			}
			prev = cur
		}
	})

	It("accumulates additively: total of a sequence is the sum of individual contributions", func() {
		onlyA := heat.NewField(km, 10, field.Sigma())
		onlyA.Accumulate(a)

		onlyB := heat.NewField(km, 10, field.Sigma())
		onlyB.Accumulate(b)

		field.Accumulate(a)
		field.Accumulate(b)

		Expect(field.Total()).To(BeNumerically("~", onlyA.Total()+onlyB.Total(), 1e-9))
	})

	It("reinforces repeated strikes on the same key", func() {
		field.Accumulate(a)
		once := field.Sample(a.CenterX(), a.CenterY())
		field.Accumulate(a)
		Expect(field.Sample(a.CenterX(), a.CenterY())).To(BeNumerically("~", 2*once, 1e-9))
	})

	It("touches only cells within the kernel window", func() {
		field.Accumulate(a)

		Expect(field.Sample(a.CenterX(), a.CenterY())).To(BeNumerically(">", 0))

		// Cells beyond three standard deviations (plus one cell of slack for
		// discretization) from the blob center must stay exactly zero.
		reach := 3*field.Sigma() + field.CellSize()
		ox, oy := field.Origin()
		for j := 0; j < field.Height(); j++ {
			for i := 0; i < field.Width(); i++ {
				x := ox + (float64(i)+0.5)*field.CellSize()
				y := oy + (float64(j)+0.5)*field.CellSize()
				dx, dy := x-a.CenterX(), y-a.CenterY()
				if dx*dx+dy*dy > reach*reach {
					Expect(field.Value(i, j)).To(BeZero())
				}
			}
		}
	})

	It("shows more heat at a key struck three times than one struck once", func() {
		// "aabA": a, a, and shifted A all land on the a key, b once.
		for _, r := range "aabA" {
			k, _, ok := km.Resolve(r)
			Expect(ok).To(BeTrue())
			field.Accumulate(k)
		}

		atA := field.Sample(a.CenterX(), a.CenterY())
		atB := field.Sample(b.CenterX(), b.CenterY())
		Expect(atA).To(BeNumerically(">", atB))
	})

	It("zeroes all cells on Reset", func() {
		field.Accumulate(a)
		field.Accumulate(b)
		field.Reset()
		Expect(field.Total()).To(BeZero())
	})

	It("centers the kernel on a wide key's visual center", func() {
		wide := buildKeymap(`<kbd name="w"><row id="home">
		  <key lower="space" width="5"><pos><x>0</x><y>0</y></pos></key>
		</row></kbd>`)
		space, ok := wide.Lookup("space")
		Expect(ok).To(BeTrue())

		f := heat.NewField(wide, 10, 0.5)
		f.Accumulate(space)

		// Peak at the center (x=2.5), not at the declared x origin.
		Expect(f.Sample(2.5, 0.5)).To(BeNumerically(">", f.Sample(0.1, 0.5)))
	})
})

var _ = Describe("Colormap", func() {
	It("resolves every published name", func() {
		for _, name := range heat.Names() {
			c, err := heat.ByName(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Name).To(Equal(name))
		}
	})

	It("rejects unknown names", func() {
		_, err := heat.ByName("plasma")
		Expect(err).To(HaveOccurred())
	})

	It("clamps out-of-range intensities", func() {
		c, err := heat.ByName("coolwarm")
		Expect(err).NotTo(HaveOccurred())

		r0, g0, b0 := c.At(-1)
		r1, g1, b1 := c.At(0)
		Expect([3]uint8{r0, g0, b0}).To(Equal([3]uint8{r1, g1, b1}))

		r2, g2, b2 := c.At(2)
		r3, g3, b3 := c.At(1)
		Expect([3]uint8{r2, g2, b2}).To(Equal([3]uint8{r3, g3, b3}))
	})

	It("interpolates between stops", func() {
		c, err := heat.ByName("cool")
		Expect(err).NotTo(HaveOccurred())
		r, g, b := c.At(0.5)
		Expect(r).To(BeNumerically("~", 127, 1))
		Expect(g).To(BeNumerically("~", 127, 1))
		Expect(b).To(Equal(uint8(255)))
	})
})
