package dexireader

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
)

// xmlDocument is the top-level element, <DEXi>, holding exactly one root
// xmlAttribute.
type xmlDocument struct {
	XMLName xml.Name      `xml:"DEXi"`
	Root    *xmlAttribute `xml:"ATTRIBUTE"`
}

// xmlAttribute mirrors one ATTRIBUTE element: a name, its scale, an
// optional flat FUNCTION table (absent for leaves), and nested child
// ATTRIBUTE elements in fixed order.
type xmlAttribute struct {
	Name     string         `xml:"NAME"`
	Scale    xmlScale       `xml:"SCALE"`
	Function string         `xml:"FUNCTION"`
	Children []xmlAttribute `xml:"ATTRIBUTE"`
}

type xmlScale struct {
	Values []xmlScaleValue `xml:"SCALEVALUE"`
}

type xmlScaleValue struct {
	Name string `xml:"NAME"`
}

// Read parses the DEXi-like XML document in r into a model.Model.
func Read(r io.Reader) (*model.Model, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("dexireader: decode: %w", err)
	}
	if doc.Root == nil {
		return nil, ErrNoRoot
	}

	var attrs []model.Attribute
	if _, err := flatten(doc.Root, &attrs); err != nil {
		return nil, err
	}

	return model.NewModel(attrs)
}

// flatten appends x (and, recursively, its subtree) to attrs in the
// pre-order the rest of the codebase expects (parent before children),
// returning x's own index.
func flatten(x *xmlAttribute, attrs *[]model.Attribute) (int, error) {
	values := make([]string, len(x.Scale.Values))
	for i, v := range x.Scale.Values {
		values[i] = v.Name
	}
	if len(values) == 0 {
		return 0, ErrEmptyScale
	}

	idx := len(*attrs)
	*attrs = append(*attrs, model.Attribute{
		Name:  x.Name,
		Scale: model.Scale{Values: values, Ordered: true},
	})

	if len(x.Children) == 0 {
		return idx, nil
	}

	children := make([]int, len(x.Children))
	for i := range x.Children {
		c, err := flatten(&x.Children[i], attrs)
		if err != nil {
			return 0, err
		}
		children[i] = c
	}

	tbl, err := buildFunction(x.Function, values, *attrs, children)
	if err != nil {
		return 0, err
	}

	(*attrs)[idx].Children = children
	(*attrs)[idx].Table = tbl

	return idx, nil
}

// buildFunction parses a FUNCTION element's whitespace-separated scale
// value names into a matrix.Dense, row-major over the children's
// mixed-radix index space.
func buildFunction(raw string, ownScale []string, attrs []model.Attribute, children []int) (*matrix.Dense, error) {
	fields := strings.Fields(raw)

	rows := 1
	for _, c := range children {
		rows *= attrs[c].Scale.Size()
	}
	if len(fields) != rows {
		return nil, fmt.Errorf("%w: want %d, got %d", ErrBadFunctionLength, rows, len(fields))
	}

	tbl, err := matrix.NewDense(rows, 1)
	if err != nil {
		return nil, fmt.Errorf("dexireader: %w", err)
	}
	for r, name := range fields {
		v := indexOf(ownScale, name)
		if v < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFunctionValue, name)
		}
		tbl.MustSet(r, 0, int8(v))
	}

	return tbl, nil
}

func indexOf(values []string, name string) int {
	for i, v := range values {
		if v == name {
			return i
		}
	}

	return -1
}

// Write serializes m as a DEXi-like XML document, the inverse of Read.
func Write(w io.Writer, m *model.Model) error {
	doc := xmlDocument{Root: toXML(m, 0)}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dexireader: encode: %w", err)
	}

	return nil
}

func toXML(m *model.Model, idx int) *xmlAttribute {
	a := &m.Attributes[idx]
	x := &xmlAttribute{Name: a.Name}
	x.Scale.Values = make([]xmlScaleValue, len(a.Scale.Values))
	for i, v := range a.Scale.Values {
		x.Scale.Values[i] = xmlScaleValue{Name: v}
	}

	if a.IsLeaf() {
		return x
	}

	x.Children = make([]xmlAttribute, len(a.Children))
	for i, c := range a.Children {
		x.Children[i] = *toXML(m, c)
	}

	names := make([]string, a.Table.Rows())
	for r := 0; r < a.Table.Rows(); r++ {
		v := a.Table.MustAt(r, 0)
		names[r] = a.Scale.Values[v]
	}
	x.Function = strings.Join(names, " ")

	return x
}
