package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kgrae/bookdesk/internal/bookapi"
)

// renderList prints a fetched page in the selected output format. Structured
// formats emit the raw records; the table format gets per-entity columns.
func renderList[T any](items []T, p bookapi.Pagination, headers []string, row func(T) []string) error {
	switch flagOutput {
	case "json":
		return printJSON(items)
	case "yaml":
		return printYAML(items)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, item := range items {
		fmt.Fprintln(w, strings.Join(row(item), "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if p.TotalPages > 0 {
		fmt.Printf("page %d/%d · %d total\n", p.CurrentPage, p.TotalPages, p.TotalItems)
	}
	return nil
}

// renderRecord prints one record in the selected output format. The table
// format prints aligned field/value lines.
func renderRecord[T any](record T, fields [][2]string) error {
	switch flagOutput {
	case "json":
		return printJSON(record)
	case "yaml":
		return printYAML(record)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, field := range fields {
		fmt.Fprintf(w, "%s:\t%s\n", field[0], field[1])
	}
	return w.Flush()
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printYAML(v any) error {
	out, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
