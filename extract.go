package jpltables

import "fmt"

// J2000 is the Julian Date of the J2000.0 epoch.
const J2000 = 2451545.0

// JDToMJDJ2000 converts a Julian Date to days since J2000.0.
func JDToMJDJ2000(jd float64) float64 {
	return jd - J2000
}

// ExtractCoefficients walks the records overlapping window and cuts body's
// coefficients into per-axis Chebyshev segments.
//
// seen holds the piece start epochs already emitted for this body; a piece whose
// start epoch is in seen is dropped on all three axes, so records repeated by
// overlapping input files contribute only once. A nil seen starts a new set.
// The updated set is returned.
//
// massRatio is only used for EarthFromEMB, in which case params must be the
// Moon's parameters.
func ExtractCoefficients(
	blocks []DataBlock, massRatio float64, window Window,
	body CelestialBody, params TableParameters, seen EpochSet,
) (*OutputTable, EpochSet, error) {
	if body == EarthFromEMB {
		return ExtractEarthFromEMB(blocks, massRatio, window, params, seen)
	}
	return extract(blocks, window, body, params, nil, seen)
}

// ExtractEarthFromEMB builds the table of Earth's position relative to the
// Earth-Moon barycenter from the Moon's geocentric coefficients:
// r_earth = -r_moon / (1 + EMRAT). moonParams must come from the Moon's column.
func ExtractEarthFromEMB(
	blocks []DataBlock, massRatio float64, window Window,
	moonParams TableParameters, seen EpochSet,
) (*OutputTable, EpochSet, error) {
	scale := 1 + massRatio
	toEarth := func(v float64) float64 {
		return -v / scale
	}
	return extract(blocks, window, EarthFromEMB, moonParams, toEarth, seen)
}

// extract is shared by both extractors. When transform is non-nil it is applied
// to every coefficient of the body's region before segmentation.
func extract(
	blocks []DataBlock, window Window, body CelestialBody,
	params TableParameters, transform func(float64) float64, seen EpochSet,
) (*OutputTable, EpochSet, error) {
	if err := checkParameters(params); err != nil {
		return nil, seen, fmt.Errorf("%s: %w", body, err)
	}
	if seen == nil {
		seen = EpochSet{}
	}

	table := &OutputTable{Body: body, Params: params}
	n := params.CoeffsPerPoly

	for i, block := range blocks {
		if len(block) < 2 || len(block) < params.StopIndex {
			return nil, seen, fmt.Errorf("%s: record %d has %d values, need %d",
				body, i+1, len(block), params.StopIndex)
		}

		start := JDToMJDJ2000(block.JDStart())
		stop := JDToMJDJ2000(block.JDStop())
		if !window.overlaps(start, stop) {
			continue
		}

		region := block[params.StartIndex:params.StopIndex]
		if transform != nil {
			transformed := make([]float64, len(region))
			for j, v := range region {
				transformed[j] = transform(v)
			}
			region = transformed
		}

		for k := 0; k < params.PolysPerBlock; k++ {
			pieceStart := start + params.DaysPerPoly*float64(k)
			pieceStop := pieceStart + params.DaysPerPoly

			if seen.Has(pieceStart) {
				continue
			}
			seen.Add(pieceStart)

			off := 3 * n * k
			table.X = append(table.X, newSegment(pieceStart, pieceStop, region[off:off+n]))
			table.Y = append(table.Y, newSegment(pieceStart, pieceStop, region[off+n:off+2*n]))
			table.Z = append(table.Z, newSegment(pieceStart, pieceStop, region[off+2*n:off+3*n]))
		}
	}

	return table, seen, nil
}

// checkParameters verifies the region described by params holds exactly
// PolysPerBlock pieces of three axes each.
func checkParameters(params TableParameters) error {
	if params.CoeffsPerPoly <= 0 || params.PolysPerBlock <= 0 {
		return fmt.Errorf("invalid table parameters %+v", params)
	}
	if params.StartIndex < 0 || params.StopIndex < params.StartIndex {
		return fmt.Errorf("invalid coefficient range [%d, %d)", params.StartIndex, params.StopIndex)
	}
	want := 3 * params.CoeffsPerPoly * params.PolysPerBlock
	if got := params.StopIndex - params.StartIndex; got != want {
		return fmt.Errorf("coefficient range holds %d values, expected 3*%d*%d = %d",
			got, params.CoeffsPerPoly, params.PolysPerBlock, want)
	}
	return nil
}

func newSegment(start, stop float64, coeffs []float64) ChebyshevSegment {
	c := make([]float64, len(coeffs))
	copy(c, coeffs)
	return ChebyshevSegment{Start: start, Stop: stop, Coefficients: c}
}
