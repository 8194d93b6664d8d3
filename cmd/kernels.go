package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/rm-hull/image-convolution/internal/convolve"
)

// ListKernels prints the kernel catalog, optionally with each weight matrix.
func ListKernels(w io.Writer, weights bool) {
	var data [][]string
	for _, k := range convolve.Kernels() {
		kw, kh := k.Size()
		row := []string{
			k.Name(),
			fmt.Sprintf("%dx%d", kw, kh),
			strconv.FormatBool(k.Normalized()),
			strconv.FormatFloat(float64(k.Sum()), 'g', -1, 32),
			strconv.FormatFloat(float64(k.Factor()), 'g', 6, 32),
		}
		if weights {
			row = append(row, formatWeights(k))
		}
		data = append(data, row)
	}

	header := []string{"NAME", "SIZE", "NORMALIZE", "SUM", "FACTOR"}
	if weights {
		header = append(header, "WEIGHTS")
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

func formatWeights(k *convolve.Kernel) string {
	cols := make([]string, 0)
	for _, col := range k.Weights() {
		vals := make([]string, len(col))
		for i, v := range col {
			vals[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		}
		cols = append(cols, "["+strings.Join(vals, " ")+"]")
	}
	return strings.Join(cols, " ")
}
