package jpltables

import "fmt"

// ResolveTableParameters derives where body's coefficients live in a record from
// the header layout table. Offsets in the table are 1-based; the returned
// indices are 0-based positions within a DataBlock, so the body occupies
// block[StartIndex:StopIndex].
func ResolveTableParameters(body CelestialBody, layout LayoutTable) (TableParameters, error) {
	if body.IsDerived() {
		return TableParameters{}, fmt.Errorf("%s has no column in the layout table", body)
	}
	if body < 0 || int(body) >= numBodies {
		return TableParameters{}, fmt.Errorf("invalid celestial body %d", int(body))
	}
	if len(layout) < layoutRows {
		return TableParameters{}, fmt.Errorf("layout table has %d rows, expected %d", len(layout), layoutRows)
	}

	col := int(body)
	for _, row := range layout[:layoutRows] {
		if col+1 >= len(row) {
			return TableParameters{}, fmt.Errorf("layout table has no column for %s", body)
		}
	}

	polys := layout[2][col]
	if polys <= 0 {
		return TableParameters{}, fmt.Errorf("%s has %d polynomials per block", body, polys)
	}

	return TableParameters{
		StartIndex:    layout[0][col] - 1,
		StopIndex:     layout[0][col+1] - 1,
		CoeffsPerPoly: layout[1][col],
		PolysPerBlock: polys,
		DaysPerPoly:   DaysPerBlock / float64(polys),
	}, nil
}

// resolveExtractionParameters returns the parameters the extractor should use
// for body. The derived body borrows the Moon's layout.
func resolveExtractionParameters(body CelestialBody, layout LayoutTable) (TableParameters, error) {
	if body == EarthFromEMB {
		return ResolveTableParameters(Moon, layout)
	}
	return ResolveTableParameters(body, layout)
}
