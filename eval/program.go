package eval

import (
	"sync"

	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
)

// Op is a single opcode in a compiled evaluation Program.
type Op struct {
	// PushLeaf is true for a PUSH_LEAF opcode, false for a REDUCE opcode.
	PushLeaf bool

	// LeafPos is the index into the basic-value row (leaf order), valid
	// only when PushLeaf is true.
	LeafPos int

	// Attr is the attribute index to reduce, valid only when PushLeaf is
	// false.
	Attr int

	// ChildRadices holds each child's scale size, in fixed child order,
	// valid only when PushLeaf is false. Run uses these to fold the
	// popped child values into Attr's table row index via Horner's
	// method, with the last child as the least significant digit
	// idx = Σ v_k · Π_{m>k} ChildRadices[m].
	ChildRadices []int
}

// Program is the compiled opcode stream for one Model, plus the bits Run
// needs to reuse a pooled stack without reconsulting the model.
type Program struct {
	ops      []Op
	maxDepth int
	pool     sync.Pool
}

// Compile linearizes m's attribute tree into postorder PUSH_LEAF/REDUCE
// opcodes. The result is read-only and safe to share across
// goroutines; call Run concurrently from as many as you like.
func Compile(m *model.Model) *Program {
	leafPos := make(map[int]int, m.NumLeaves())
	for i, attrIdx := range m.Leaves() {
		leafPos[attrIdx] = i
	}

	p := &Program{}
	var depth, maxDepth int
	var visit func(attrIdx int)
	visit = func(attrIdx int) {
		a := &m.Attributes[attrIdx]
		if a.IsLeaf() {
			p.ops = append(p.ops, Op{PushLeaf: true, LeafPos: leafPos[attrIdx]})
			depth++
			if depth > maxDepth {
				maxDepth = depth
			}

			return
		}
		radices := make([]int, len(a.Children))
		for i, c := range a.Children {
			visit(c)
			radices[i] = m.Attributes[c].Scale.Size()
		}
		p.ops = append(p.ops, Op{PushLeaf: false, Attr: attrIdx, ChildRadices: radices})
		depth -= len(a.Children) - 1 // pop children, push one result
	}
	visit(0)

	p.maxDepth = maxDepth
	p.pool.New = func() interface{} {
		s := make([]int8, 0, p.maxDepth)
		return &s
	}

	return p
}

// Run evaluates the program against tables (indexed by attribute index,
// nil for leaves) and a basic-value row (in leaf order), returning the
// root scale value. Complexity: O(number of tree nodes).
func (p *Program) Run(tables map[int]*matrix.Dense, row []int8) int8 {
	stackPtr := p.pool.Get().(*[]int8)
	stack := (*stackPtr)[:0]
	defer func() {
		*stackPtr = stack[:0]
		p.pool.Put(stackPtr)
	}()

	for _, op := range p.ops {
		if op.PushLeaf {
			stack = append(stack, row[op.LeafPos])
			continue
		}

		n := len(op.ChildRadices)
		children := stack[len(stack)-n:]

		idx := 0
		for k, radix := range op.ChildRadices {
			idx = idx*radix + int(children[k])
		}
		stack = stack[:len(stack)-n]

		v := tables[op.Attr].MustAt(idx, 0)
		stack = append(stack, v)
	}

	return stack[len(stack)-1]
}
