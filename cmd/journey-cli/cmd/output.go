package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint)
	marked  = color.New(color.FgHiGreen)
	warning = color.New(color.FgHiYellow)
)

// printTable writes rows under a bold header, columns separated by two spaces
func printTable(w io.Writer, header []interface{}, rows [][]interface{}) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 80
	tbl.Wrap = false

	boldHeader := make([]interface{}, len(header))
	for i, h := range header {
		boldHeader[i] = bold.Sprint(h)
	}
	tbl.AddRow(boldHeader...)
	for _, row := range rows {
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func activeMark(active bool) string {
	if active {
		return marked.Sprint("*")
	}
	return " "
}
