package jpltables

import (
	"fmt"
	"strings"
)

// CelestialBody represents the celestial bodies extracted from a JPL DE release,
// in the order their columns appear in the header's GROUP 1050 table.
type CelestialBody int

const (
	Mercury CelestialBody = iota
	Venus
	EarthMoonBarycenter
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Moon
	Sun
	// EarthFromEMB is Earth relative to the Earth-Moon barycenter. It has no
	// column of its own and is derived from the Moon's coefficients.
	EarthFromEMB
)

// numBodies is the number of CelestialBody variants.
const numBodies = int(EarthFromEMB) + 1

// DaysPerBlock is the time span covered by one data record.
const DaysPerBlock = 32.0

var bodyNames = [numBodies]string{
	Mercury:             "Mercury",
	Venus:               "Venus",
	EarthMoonBarycenter: "EMB",
	Mars:                "Mars",
	Jupiter:             "Jupiter",
	Saturn:              "Saturn",
	Uranus:              "Uranus",
	Neptune:             "Neptune",
	Pluto:               "Pluto",
	Moon:                "Moon",
	Sun:                 "Sun",
	EarthFromEMB:        "EarthFromEMB",
}

// String returns the short name used in output file and table names.
func (b CelestialBody) String() string {
	if b < 0 || int(b) >= numBodies {
		return fmt.Sprintf("CelestialBody(%d)", int(b))
	}
	return bodyNames[b]
}

// IsDerived reports whether the body's coefficients are computed rather than
// read from its own header column.
func (b CelestialBody) IsDerived() bool {
	return b == EarthFromEMB
}

// TableFileName returns the name of the output artifact for the body.
func (b CelestialBody) TableFileName() string {
	if b == EarthFromEMB {
		return "earth_relative_to_emb.txt"
	}
	return b.String() + "_position.txt"
}

// TableClassName returns the identifier the interpolation tables are declared on.
// The Moon is geocentric, the derived body is relative to the barycenter and
// every other body is relative to the solar system barycenter.
func (b CelestialBody) TableClassName() string {
	switch b {
	case Moon:
		return "MoonGCRFTable"
	case EarthFromEMB:
		return "EarthFromEMBGCRFTable"
	default:
		return b.String() + "FromSSBGCRFTable"
	}
}

// AllBodies returns every CelestialBody in ordinal order.
func AllBodies() []CelestialBody {
	bodies := make([]CelestialBody, numBodies)
	for i := range bodies {
		bodies[i] = CelestialBody(i)
	}
	return bodies
}

// ParseCelestialBody looks up a body by its short name, ignoring case.
func ParseCelestialBody(name string) (CelestialBody, error) {
	name = strings.TrimSpace(name)
	for i, n := range bodyNames {
		if strings.EqualFold(n, name) {
			return CelestialBody(i), nil
		}
	}
	return 0, fmt.Errorf("unknown celestial body %q", name)
}

// LayoutTable is the GROUP 1050 table of the header. Row 0 holds the 1-based
// start offset of each body's coefficients within a record, row 1 the number of
// coefficients per polynomial and row 2 the number of polynomials per record.
// It has one column per body plus a trailing column that bounds the last one.
type LayoutTable [][]int

// TableParameters describes where a body's coefficients sit inside a DataBlock
// and how they are split into polynomial pieces.
type TableParameters struct {
	StartIndex    int
	StopIndex     int
	CoeffsPerPoly int
	PolysPerBlock int
	DaysPerPoly   float64
}

// DataBlock is one 32-day record: [jd_start, jd_stop, coeff_1 .. coeff_N].
type DataBlock []float64

// JDStart returns the Julian Date the record starts at.
func (b DataBlock) JDStart() float64 { return b[0] }

// JDStop returns the Julian Date the record ends at.
func (b DataBlock) JDStop() float64 { return b[1] }

// ChebyshevSegment holds the coefficients of one axis of one polynomial piece,
// valid over [Start, Stop] in days since J2000.
type ChebyshevSegment struct {
	Start        float64
	Stop         float64
	Coefficients []float64
}

// OutputTable is everything written for one body: the x, y and z segments in
// traversal order together with the parameters used to cut them.
type OutputTable struct {
	Body   CelestialBody
	Params TableParameters
	X      []ChebyshevSegment
	Y      []ChebyshevSegment
	Z      []ChebyshevSegment
}

// Window is an inclusive date range in days since J2000.
type Window struct {
	StartMJD float64 `yaml:"start_mjd"`
	StopMJD  float64 `yaml:"stop_mjd"`
}

// overlaps reports whether [start, stop] shares any instant with the window.
func (w Window) overlaps(start, stop float64) bool {
	return !(stop < w.StartMJD || start > w.StopMJD)
}

// EpochSet records the piece start epochs already emitted for one body. A
// fresh set is used for each body on each run.
type EpochSet map[float64]struct{}

// Has reports whether epoch has been recorded.
func (s EpochSet) Has(epoch float64) bool {
	_, ok := s[epoch]
	return ok
}

// Add records epoch.
func (s EpochSet) Add(epoch float64) {
	s[epoch] = struct{}{}
}

// headerParser defines how the Generator obtains the mass ratio and layout table.
type headerParser interface {
	parseHeader(path string) (float64, LayoutTable, error)
}

// blockReader defines how the Generator loads the data records.
type blockReader interface {
	readBlocks(paths []string, config BlockConfig) ([]DataBlock, error)
}

// tableWriter defines how the Generator persists a finished body table.
type tableWriter interface {
	writeTable(dir string, table *OutputTable) (string, error)
}

type headerParserImpl struct{}

func (headerParserImpl) parseHeader(path string) (float64, LayoutTable, error) {
	return ParseHeaderFile(path)
}

type blockReaderImpl struct{}

func (blockReaderImpl) readBlocks(paths []string, config BlockConfig) ([]DataBlock, error) {
	return ReadBlocks(paths, config)
}

type tableWriterImpl struct{}

func (tableWriterImpl) writeTable(dir string, table *OutputTable) (string, error) {
	return WriteTableFile(dir, table)
}
