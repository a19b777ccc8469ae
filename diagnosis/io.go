package diagnosis

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// QueryRecord is one query read from a batch input file.
type QueryRecord struct {
	Index    string   `json:"index,omitempty"`
	Line     string   `json:"line"`
	Symptoms []string `json:"symptoms"`
}

// QueryParseOptions selects which CSV/TSV columns hold the symptoms and the record id.
// Columns are given by header name or 1-based "#N".
type QueryParseOptions struct {
	SymptomColumn string
	IndexColumn   string
}

// ParseQueryFile reads queries using automatic column detection.
func ParseQueryFile(path string) ([]QueryRecord, error) {
	return ParseQueryFileWithOptions(path, QueryParseOptions{})
}

// ParseQueryFileWithOptions reads a plain text file (one comma separated query per
// line) or a CSV/TSV file with a symptom column.
func ParseQueryFileWithOptions(path string, opts QueryParseOptions) ([]QueryRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseDelimitedQueries(path, ',', opts)
	case ".tsv":
		return parseDelimitedQueries(path, '\t', opts)
	default:
		return parsePlainTextQueries(path)
	}
}

func parsePlainTextQueries(path string) ([]QueryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open text file: %w", err)
	}
	defer f.Close()
	var out []QueryRecord
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := cleanCell(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, QueryRecord{
			Index:    strconv.Itoa(lineNo),
			Line:     line,
			Symptoms: ParseSymptomLine(line),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan text file: %w", err)
	}
	return out, nil
}

func parseDelimitedQueries(path string, comma rune, opts QueryParseOptions) ([]QueryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	candidates := getColumnCandidates()
	symCol, symFromHeader, err := pickColumn(header, opts.SymptomColumn, candidates.Symptoms)
	if err != nil {
		return nil, err
	}
	idxCol, idxFromHeader, err := pickColumn(header, opts.IndexColumn, candidates.Index)
	if err != nil {
		return nil, err
	}
	start := 0
	if symFromHeader || idxFromHeader {
		start = 1
	}
	if symCol < 0 {
		if start == 1 {
			return nil, errors.New("no symptom column found")
		}
		symCol = 0
	}
	records := make([]QueryRecord, 0, len(rows)-start)
	for i, row := range rows[start:] {
		if symCol >= len(row) {
			continue
		}
		line := cleanCell(row[symCol])
		if line == "" {
			continue
		}
		rec := QueryRecord{
			Index:    strconv.Itoa(i + start + 1),
			Line:     line,
			Symptoms: splitSymptomCell(line),
		}
		if idxCol >= 0 && idxCol < len(row) {
			if v := cleanCell(row[idxCol]); v != "" {
				rec.Index = v
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// splitSymptomCell accepts commas or semicolons inside a single CSV cell.
func splitSymptomCell(cell string) []string {
	return strings.FieldsFunc(cell, func(r rune) bool {
		return r == ',' || r == ';'
	})
}

func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\ufeff")
	return v
}

func findColumn(header []string, candidates []string) int {
	for i, col := range header {
		for _, cand := range candidates {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

func pickColumn(header []string, explicit string, candidates []string) (int, bool, error) {
	trimmed := strings.TrimSpace(explicit)
	if trimmed == "" {
		idx := findColumn(header, candidates)
		return idx, idx >= 0, nil
	}
	for i, col := range header {
		if strings.EqualFold(col, trimmed) {
			return i, true, nil
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, false, err
		}
		if idx >= len(header) {
			return -1, false, fmt.Errorf("column index %s is out of range", trimmed)
		}
		return idx, false, nil
	}
	return -1, false, fmt.Errorf("column %q not found", explicit)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("invalid column index %q", token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("column indices are 1-based: %q", token)
	}
	return idx - 1, nil
}
