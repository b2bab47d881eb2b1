package jpltables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// de430Header is a trimmed DE430 header: the constants groups keep only a few
// names, the layout table is the real one without the nutation/libration columns.
const de430Header = `KSIZE= 2036    NCOEFF= 1018

GROUP   1010

JPL Planetary Ephemeris DE430/LE430
Start Epoch: JED=  2287184.5 1549 DEC 21 00:00:00
Final Epoch: JED=  2688976.5 2650 JAN 25 00:00:00

GROUP   1030

  2287184.50  2688976.50         32.

GROUP   1040

     5
  DENUM   LENUM   AU      EMRAT   GM1

GROUP   1041

     5
  0.430000000000000000D+03  0.430000000000000000D+03  0.149597870700000000D+09
  0.813005690741906200D+02  0.491248045036476000D-10

GROUP   1050

     3   171   231   309   342   366   387   405   423   441   753   819   899
    14    10    13    11     8     7     6     6     6    13    11    10    10
     4     2     2     1     1     1     1     1     1     8     2     4     4

GROUP   1070

END OF HEADER
`

// de430EMRAT is the EMRAT literal of de430Header.
const de430EMRAT = 0.813005690741906200e+02

// toyHeader describes a single body with two pieces of two coefficients per record.
const toyHeader = `GROUP   1040

     1
  EMRAT

GROUP   1041

     1
  0.813005690741906200D+02

GROUP   1050

     3    15
     2     0
     2     0
`

// toyData is one record for toyHeader starting at J2000: 2 pieces x 3 axes x 2
// coefficients.
const toyData = `     1  1018
  0.245154500000000000D+07  0.245157700000000000D+07  0.100000000000000000D+01
 -0.123456789012345000D-03  0.300000000000000000D+01  0.400000000000000000D+01
  0.500000000000000000D+01  0.600000000000000000D+01  0.700000000000000000D+01
  0.800000000000000000D+01  0.900000000000000000D+01  0.100000000000000000D+02
  0.110000000000000000D+02  0.120000000000000000D+02
`

func de430Layout() LayoutTable {
	return LayoutTable{
		{3, 171, 231, 309, 342, 366, 387, 405, 423, 441, 753, 819, 899},
		{14, 10, 13, 11, 8, 7, 6, 6, 6, 13, 11, 10, 10},
		{4, 2, 2, 1, 1, 1, 1, 1, 1, 8, 2, 4, 4},
	}
}

// toyParams are the parameters toyHeader resolves to for Mercury.
var toyParams = TableParameters{
	StartIndex:    2,
	StopIndex:     14,
	CoeffsPerPoly: 2,
	PolysPerBlock: 2,
	DaysPerPoly:   16,
}

// makeBlock builds a record starting at mjdStart covering 32 days, followed by coeffs.
func makeBlock(mjdStart float64, coeffs ...float64) DataBlock {
	b := DataBlock{J2000 + mjdStart, J2000 + mjdStart + DaysPerBlock}
	return append(b, coeffs...)
}

// seq returns n values first, first+1, ...
func seq(first float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = first + float64(i)
	}
	return out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
