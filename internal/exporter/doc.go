// Package exporter writes comparison tables, trend insights, and revenue
// rankings to CSV and XLSX report files. CSV output carries a UTF-8 BOM so
// Excel opens accented hotel names correctly.
package exporter
