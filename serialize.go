package jpltables

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/facebookgo/atomicfile"
)

const tableDivider = "//--------------------------------------------------------------------------------------------------------------------------"

// WriteTable writes table in the interpolation table layout: the days-per-poly
// constant followed by the x, y and z tables, one segment per line.
func WriteTable(w io.Writer, table *OutputTable) error {
	bw := bufio.NewWriter(w)

	entries := table.Params.CoeffsPerPoly + 2
	class := table.Body.TableClassName()

	fmt.Fprintf(bw, "static constexpr double days_per_poly_ = %s;\n", formatEpoch(table.Params.DaysPerPoly))

	axes := []struct {
		name     string
		segments []ChebyshevSegment
	}{
		{"x", table.X},
		{"y", table.Y},
		{"z", table.Z},
	}
	for i, axis := range axes {
		if i > 0 {
			fmt.Fprintf(bw, "\n\n%s\n\n", tableDivider)
		}
		// The outer dimension is the x count on every axis; the three axes
		// always have the same number of segments.
		fmt.Fprintf(bw, "std::array<std::array<double, %d>, %d> %s::%s_interp_ {\n",
			entries, len(table.X), class, axis.name)
		for _, seg := range axis.segments {
			fmt.Fprintf(bw, "    std::array<double, %d>{%s},\n", entries, FormatSegment(seg))
		}
		bw.WriteString("};")
	}

	return bw.Flush()
}

// FormatSegment renders a segment as "start,stop,c1,...,cN" with each
// coefficient at 15 digits after the point in scientific notation.
func FormatSegment(seg ChebyshevSegment) string {
	var sb strings.Builder
	sb.WriteString(formatEpoch(seg.Start))
	sb.WriteByte(',')
	sb.WriteString(formatEpoch(seg.Stop))
	for _, c := range seg.Coefficients {
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(c, 'e', 15, 64))
	}
	return sb.String()
}

// formatEpoch prints the shortest representation that round-trips, keeping a
// trailing ".0" on integral values so they still read as doubles.
func formatEpoch(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}

// WriteTableFile writes table to its conventional file name inside dir and
// returns the path. The file only appears once it has been written completely.
func WriteTableFile(dir string, table *OutputTable) (string, error) {
	path := filepath.Join(dir, table.Body.TableFileName())

	f, err := atomicfile.New(path, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := WriteTable(f, table); err != nil {
		f.Abort()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to commit %s: %w", path, err)
	}

	return path, nil
}

// ensureDir creates the output directory if needed.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}
