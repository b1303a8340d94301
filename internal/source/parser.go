// Package source discovers and parses transaction import files.
package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMissingColumns is returned for CSV files whose header lacks date or amount.
var ErrMissingColumns = errors.New("csv header must include date and amount columns")

// ParseResult holds the output of parsing a single import file.
type ParseResult struct {
	File        DiscoveredFile
	Records     []RawTransaction
	ParseErrors int
	Err         error
}

// ParseFile reads an import file into raw transaction records. Malformed
// records are counted in ParseErrors and skipped. Err is set only when the
// file as a whole cannot be read.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{File: df, Err: err}
	}
	defer func() { _ = f.Close() }()

	var res ParseResult
	switch df.Format {
	case FormatCSV:
		res = parseCSV(f)
	case FormatJSONL:
		res = parseJSONL(f)
	case FormatYAML:
		res = parseYAML(f)
	default:
		res = ParseResult{Err: fmt.Errorf("unsupported format %q", df.Format)}
	}
	res.File = df
	return res
}

func parseCSV(r io.Reader) ParseResult {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ParseResult{}
		}
		return ParseResult{Err: fmt.Errorf("reading csv header: %w", err)}
	}

	cols := map[string]int{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	dateIdx, okDate := cols["date"]
	amountIdx, okAmount := cols["amount"]
	if !okDate || !okAmount {
		return ParseResult{Err: ErrMissingColumns}
	}
	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var res ParseResult
	line := 1
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			res.ParseErrors++
			continue
		}
		if dateIdx >= len(row) || amountIdx >= len(row) {
			res.ParseErrors++
			continue
		}
		res.Records = append(res.Records, RawTransaction{
			Date:        strings.TrimSpace(row[dateIdx]),
			Category:    field(row, "category"),
			Description: field(row, "description"),
			Amount:      strings.TrimSpace(row[amountIdx]),
			Line:        line,
		})
	}
	return res
}

func parseJSONL(r io.Reader) ParseResult {
	var res ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 || b[0] == '#' {
			continue
		}
		var rec RawTransaction
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		if err := dec.Decode(&rec); err != nil {
			res.ParseErrors++
			continue
		}
		rec.Line = line
		res.Records = append(res.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		res.Err = fmt.Errorf("reading jsonl: %w", err)
	}
	return res
}

func parseYAML(r io.Reader) ParseResult {
	data, err := io.ReadAll(r)
	if err != nil {
		return ParseResult{Err: fmt.Errorf("reading yaml: %w", err)}
	}

	// Accept either a bare list or a document with a "transactions" key.
	var nodes []yaml.Node
	var doc struct {
		Transactions []yaml.Node `yaml:"transactions"`
	}
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return ParseResult{Err: fmt.Errorf("parsing yaml: %w", err)}
		}
		nodes = doc.Transactions
	}

	var res ParseResult
	for i := range nodes {
		var rec RawTransaction
		if err := nodes[i].Decode(&rec); err != nil {
			res.ParseErrors++
			continue
		}
		rec.Line = i + 1
		res.Records = append(res.Records, rec)
	}
	return res
}
