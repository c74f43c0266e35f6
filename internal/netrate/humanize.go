package netrate

import (
	"math"
	"strconv"
)

var binaryUnits = []struct {
	symbol byte
	size   float64
}{
	{'Y', 1 << 80},
	{'Z', 1 << 70},
	{'E', 1 << 60},
	{'P', 1 << 50},
	{'T', 1 << 40},
	{'G', 1 << 30},
	{'M', 1 << 20},
	{'K', 1 << 10},
}

// HumanizeBytes formats n with the largest binary unit not exceeding it,
// truncated to a whole number: 10000 is "9K", 1023 is "1023B". Negative and
// NaN inputs format as "0B".
func HumanizeBytes(n float64) string {
	if math.IsNaN(n) || n < 0 {
		n = 0
	}

	for _, unit := range binaryUnits {
		if n >= unit.size {
			return strconv.FormatFloat(math.Floor(n/unit.size), 'f', 0, 64) + string(unit.symbol)
		}
	}

	return strconv.FormatUint(uint64(n), 10) + "B"
}
