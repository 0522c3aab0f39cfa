package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/efyj-go/efyj/dexireader"
	"github.com/efyj-go/efyj/matrix"
	"github.com/efyj-go/efyj/model"
	"github.com/efyj-go/efyj/options"
)

func writeTempModel(t *testing.T) string {
	t.Helper()
	tbl, err := matrix.NewDense(6, 1)
	require.NoError(t, err)
	for r := 0; r < 6; r++ {
		require.NoError(t, tbl.Set(r, 0, int8(r%3)))
	}
	attrs := []model.Attribute{
		{Name: "root", Scale: model.Scale{Values: []string{"lo", "mid", "hi"}}, Children: []int{1, 2}, Table: tbl},
		{Name: "a", Scale: model.Scale{Values: []string{"x", "y", "z"}}},
		{Name: "b", Scale: model.Scale{Values: []string{"p", "q"}}},
	}
	m, err := model.NewModel(attrs)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.xml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, dexireader.Write(f, m))
	require.NoError(t, f.Close())

	return path
}

func writeTempOptions(t *testing.T, modelPath string) string {
	t.Helper()
	f, err := os.Open(modelPath)
	require.NoError(t, err)
	defer f.Close()
	m, err := dexireader.Read(f)
	require.NoError(t, err)

	ds := &options.Dataset{N: 6, L: 2}
	ds.Values = make([]int8, 0, 12)
	ds.Observed = make([]int8, 6)
	ds.Department = make([]int, 6)
	ds.Year = make([]int, 6)
	ds.Simulation = make([]string, 6)
	ds.Place = make([]*string, 6)

	row := 0
	for av := 0; av < 3; av++ {
		for bv := 0; bv < 2; bv++ {
			ds.Values = append(ds.Values, int8(av), int8(bv))
			r, _ := m.Attributes[0].Table.At(row, 0)
			ds.Observed[row] = r
			ds.Department[row] = row % 2
			ds.Year[row] = 2020 + row
			ds.Simulation[row] = "s"
			row++
		}
	}
	require.NoError(t, ds.Validate(m))

	path := filepath.Join(t.TempDir(), "options.csv")
	of, err := os.Create(path)
	require.NoError(t, err)
	defer of.Close()
	require.NoError(t, options.WriteCSV(of, m, ds))

	return path
}

func TestExecute_EvaluateOnly(t *testing.T) {
	modelPath := writeTempModel(t)
	optionsPath := writeTempOptions(t, modelPath)

	var out, errOut bytes.Buffer
	code := Execute([]string{"-m", modelPath, "-o", optionsPath, "-a", "0"}, &out, &errOut)
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "k=0")
}

func TestExecute_MissingModel(t *testing.T) {
	var out, errOut bytes.Buffer
	code := Execute([]string{}, &out, &errOut)
	require.Equal(t, 1, code)
	require.NotEmpty(t, errOut.String())
}

func TestExecute_ExtractDump(t *testing.T) {
	modelPath := writeTempModel(t)
	optionsPath := writeTempOptions(t, modelPath)
	extractPath := filepath.Join(t.TempDir(), "extract.json")

	var out, errOut bytes.Buffer
	code := Execute([]string{"-m", modelPath, "-o", optionsPath, "-a", "0", "-e", extractPath}, &out, &errOut)
	require.Equal(t, 0, code)

	data, err := os.ReadFile(extractPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "squared_kappa")
}

func TestExecute_NoOptionsFile(t *testing.T) {
	modelPath := writeTempModel(t)

	var out, errOut bytes.Buffer
	code := Execute([]string{"-m", modelPath}, &out, &errOut)
	require.Equal(t, 0, code)
	require.Contains(t, out.String(), "nothing to evaluate")
}
