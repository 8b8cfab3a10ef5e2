// Package exporter writes the aggregate table behind each chart as a CSV
// file next to the chart artifacts.
//
// Files carry a UTF-8 BOM so spreadsheet tools detect the encoding. Relative
// names resolve into the tables output directory.
//
// Example usage:
//
//	tables := exporter.NewTableWriter(exporter.NewCSVWriter(paths))
//	err := tables.Write("director-success", []string{"director", "wins"}, rows)
package exporter
