package jpltables

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	groupTag          = "GROUP"
	groupConstNames   = "1040"
	groupConstValues  = "1041"
	groupLayout       = "1050"
	emratName         = "EMRAT"
	groupPreambleSize = 2
	layoutRows        = 3
)

// ParseHeaderFile opens the header file of a DE release and returns the
// Earth/Moon mass ratio and the coefficient layout table.
func ParseHeaderFile(path string) (float64, LayoutTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to open header file: %w", err)
	}
	defer f.Close()

	emrat, layout, err := ParseHeader(f)
	if err != nil {
		var hpe *HeaderParseError
		if errors.As(err, &hpe) && hpe.Path == "" {
			hpe.Path = path
		}
		return 0, nil, err
	}
	return emrat, layout, nil
}

// ParseHeader reads a header from r. Lines are routed to the group named by the
// most recent "GROUP nnnn" line; only groups 1040, 1041 and 1050 are kept.
func ParseHeader(r io.Reader) (float64, LayoutTable, error) {
	groups := map[string][]string{
		groupConstNames:  nil,
		groupConstValues: nil,
		groupLayout:      nil,
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	current := ""
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) >= 2 && fields[0] == groupTag {
			current = fields[1]
			continue
		}
		if _, ok := groups[current]; ok {
			groups[current] = append(groups[current], line)
		}
	}
	if err := scanner.Err(); err != nil {
		return 0, nil, fmt.Errorf("failed to read header: %w", err)
	}

	emratCol, err := emratColumn(groups[groupConstNames])
	if err != nil {
		return 0, nil, err
	}

	emrat, err := emratValue(groups[groupConstValues], emratCol)
	if err != nil {
		return 0, nil, err
	}

	layout, err := parseLayout(groups[groupLayout])
	if err != nil {
		return 0, nil, err
	}

	return emrat, layout, nil
}

// groupTokens flattens the lines of a constants group into a token stream,
// dropping the group's blank separator line and its count line.
func groupTokens(lines []string) []string {
	if len(lines) > groupPreambleSize {
		lines = lines[groupPreambleSize:]
	} else {
		lines = nil
	}

	var tokens []string
	for _, line := range lines {
		tokens = append(tokens, strings.Fields(line)...)
	}
	return tokens
}

// emratColumn finds the position of EMRAT among the GROUP 1040 constant names.
func emratColumn(lines []string) (int, error) {
	for i, tok := range groupTokens(lines) {
		if tok == emratName {
			return i, nil
		}
	}
	return 0, &HeaderParseError{Reason: "EMRAT not found in GROUP 1040"}
}

// emratValue reads the GROUP 1041 value at the EMRAT column.
func emratValue(lines []string, col int) (float64, error) {
	tokens := groupTokens(lines)
	if col >= len(tokens) {
		return 0, &HeaderParseError{
			Reason: fmt.Sprintf("GROUP 1041 has %d values, EMRAT is at column %d", len(tokens), col),
		}
	}
	return ParseFloatToken(tokens[col])
}

// parseLayout turns the non-blank GROUP 1050 lines into a LayoutTable.
func parseLayout(lines []string) (LayoutTable, error) {
	var layout LayoutTable
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]int, len(fields))
		for i, f := range fields {
			v, err := parseIntToken(f)
			if err != nil {
				return nil, err
			}
			row[i] = v
		}
		layout = append(layout, row)
	}

	if len(layout) != layoutRows {
		return nil, &HeaderParseError{
			Reason: fmt.Sprintf("GROUP 1050 has %d rows, expected %d", len(layout), layoutRows),
		}
	}
	for i, row := range layout {
		if len(row) != len(layout[0]) {
			return nil, &HeaderParseError{
				Reason: fmt.Sprintf("GROUP 1050 row %d has %d columns, expected %d", i, len(row), len(layout[0])),
			}
		}
	}
	if len(layout[0]) < 2 {
		return nil, &HeaderParseError{Reason: "GROUP 1050 needs at least one body column and a trailing column"}
	}

	return layout, nil
}
