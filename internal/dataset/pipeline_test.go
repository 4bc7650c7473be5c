package dataset_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitgrid/internal/config"
	"github.com/san-kum/orbitgrid/internal/dataset"
	"github.com/san-kum/orbitgrid/internal/dynamo"
	"github.com/san-kum/orbitgrid/internal/maps"
)

var _ = Describe("Assembling and splitting", func() {
	var (
		cfg *config.Config
		asm *dataset.Assembler
	)

	BeforeEach(func() {
		cfg = config.GetPreset("reference")
		var err error
		asm, err = dataset.NewAssembler(cfg, nil)
		Expect(err).NotTo(HaveOccurred())
	})

	It("builds every curated family at the configured resolution", func() {
		all, err := asm.AssembleAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(3))

		for kind, ds := range all {
			Expect(ds.Validate()).To(Succeed(), kind.String())
			Expect(ds.Resolution()).To(Equal(cfg.Resolution))
			Expect(ds.Counts()).To(HaveKey(dynamo.LabelOrder))
			Expect(ds.Counts()).To(HaveKey(dynamo.LabelChaos))
		}
	})

	It("is deterministic across runs", func() {
		a, err := asm.Assemble(maps.DeVogelaere)
		Expect(err).NotTo(HaveOccurred())
		b, err := asm.Assemble(maps.DeVogelaere)
		Expect(err).NotTo(HaveOccurred())

		Expect(b.Labels).To(Equal(a.Labels))
		for i := range a.Grids {
			Expect(b.Grids[i].Equal(a.Grids[i])).To(BeTrue())
		}
	})

	Context("splitting the training family", func() {
		var ds dataset.Dataset

		BeforeEach(func() {
			var err error
			ds, err = asm.Assemble(maps.Standard)
			Expect(err).NotTo(HaveOccurred())
		})

		It("accounts for every entry exactly once", func() {
			train, val, err := dataset.Split(ds, cfg.TrainFraction, dataset.SplitOptions{Seed: cfg.Seed})
			Expect(err).NotTo(HaveOccurred())
			Expect(train.Len() + val.Len()).To(Equal(ds.Len()))

			counts := train.Counts()
			for l, c := range val.Counts() {
				counts[l] += c
			}
			Expect(counts).To(Equal(ds.Counts()))
		})

		It("repeats itself under the same seed", func() {
			t1, _, _ := dataset.Split(ds, cfg.TrainFraction, dataset.SplitOptions{Seed: cfg.Seed})
			t2, _, _ := dataset.Split(ds, cfg.TrainFraction, dataset.SplitOptions{Seed: cfg.Seed})
			Expect(t2.Labels).To(Equal(t1.Labels))
		})
	})

	DescribeTable("split bounds",
		func(n int, independent bool, train, start int) {
			gotTrain, gotStart := dataset.Bounds(n, 2.0/3.0, independent)
			Expect(gotTrain).To(Equal(train))
			Expect(gotStart).To(Equal(start))
		},
		Entry("disjoint 384", 384, false, 256, 256),
		Entry("independent 384", 384, true, 256, 256),
		Entry("disjoint 9", 9, false, 6, 6),
		Entry("independent 9 overlaps", 9, true, 6, 5),
	)
})
