package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatTable  OutputFormat = "table"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(strings.ToLower(s)) {
	case FormatPretty, FormatTable, FormatJSON:
		return OutputFormat(strings.ToLower(s))
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// DefaultDBName is used when the sqlite path names a directory.
const DefaultDBName = "salesdash.db"

// ResolveSQLitePath turns the configured sqlite path into a database file.
// An explicit .db file or a path that is not an existing directory is used
// as is; an existing directory gets DefaultDBName inside it.
func ResolveSQLitePath(path string) string {
	if path == "" {
		return DefaultDBName
	}
	if strings.HasSuffix(path, ".db") {
		return path
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return filepath.Join(path, DefaultDBName)
	}
	return path
}
