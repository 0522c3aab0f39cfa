package gen

import (
	"math/rand"
	"strconv"

	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
)

// RandomModel builds a random, valid model.Model of at most maxDepth
// levels (root at depth 0), for property tests over
// ("random models of depth ≤ 4"). rng must be non-nil — callers own
// seeding, for reproducible test failures.
func RandomModel(rng *rand.Rand, maxDepth int, opts ...Option) (*model.Model, error) {
	if rng == nil {
		return nil, ErrNeedRandSource
	}
	if maxDepth <= 0 {
		return nil, ErrBadDepth
	}
	cfg := newConfig(opts...)

	b := &builder{rng: rng, cfg: cfg}
	b.build(maxDepth)

	return model.NewModel(b.attrs)
}

type builder struct {
	rng   *rand.Rand
	cfg   *config
	attrs []model.Attribute
}

// build appends one attribute (and, recursively, its whole subtree) to
// b.attrs and returns its index. depthLeft == 0 forces a leaf.
func (b *builder) build(depthLeft int) int {
	scaleSize := b.cfg.minScale + b.rng.Intn(b.cfg.maxScale-b.cfg.minScale+1)
	scale := model.Scale{Values: make([]string, scaleSize), Ordered: true}
	for i := range scale.Values {
		scale.Values[i] = letterName(i)
	}

	idx := len(b.attrs)
	b.attrs = append(b.attrs, model.Attribute{Scale: scale}) // placeholder, filled below

	if depthLeft == 0 {
		b.attrs[idx].Name = leafName(idx)

		return idx
	}

	numChildren := b.cfg.minChildren + b.rng.Intn(b.cfg.maxChildren-b.cfg.minChildren+1)
	children := make([]int, numChildren)
	rows := 1
	for i := 0; i < numChildren; i++ {
		c := b.build(depthLeft - 1)
		children[i] = c
		rows *= b.attrs[c].Scale.Size()
	}

	tbl, err := matrix.NewDense(rows, 1)
	if err != nil {
		// rows is always >= 1 here (scale sizes are >= minScale >= 1), so
		// this can only happen from a genuinely broken config.
		panic(err)
	}
	for r := 0; r < rows; r++ {
		tbl.MustSet(r, 0, int8(b.rng.Intn(scaleSize)))
	}

	b.attrs[idx].Name = innerName(idx)
	b.attrs[idx].Children = children
	b.attrs[idx].Table = tbl

	return idx
}

func letterName(i int) string {
	return string(rune('a' + i%26))
}

func leafName(idx int) string  { return "leaf" + strconv.Itoa(idx) }
func innerName(idx int) string { return "attr" + strconv.Itoa(idx) }
