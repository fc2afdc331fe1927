package images

import (
	"strconv"
	"strings"
)

type namedColor struct {
	name    string
	r, g, b int
}

// Reference palette for approximating hex codes with names an image model
// understands better than raw codes.
var palette = []namedColor{
	{"black", 0, 0, 0},
	{"white", 255, 255, 255},
	{"gray", 128, 128, 128},
	{"red", 220, 53, 69},
	{"orange", 253, 126, 20},
	{"yellow", 255, 193, 7},
	{"green", 40, 167, 69},
	{"teal", 32, 201, 151},
	{"cyan", 23, 162, 184},
	{"blue", 26, 115, 232},
	{"navy", 0, 31, 84},
	{"purple", 111, 66, 193},
	{"pink", 232, 62, 140},
	{"brown", 121, 85, 72},
}

// HexToColorNames approximates each hex value with the nearest palette name.
// Unparseable values are skipped; an empty input yields a single "blue" so
// image prompts always carry at least one color.
func HexToColorNames(hexColors []string) []string {
	var names []string
	for _, hex := range hexColors {
		r, g, b, ok := parseHex(hex)
		if !ok {
			continue
		}
		names = append(names, nearestName(r, g, b))
	}
	if len(names) == 0 {
		names = []string{"blue"}
	}
	return names
}

func parseHex(s string) (int, int, int, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

func nearestName(r, g, b int) string {
	best := palette[0]
	bestDist := 1 << 30
	for _, c := range palette {
		dr, dg, db := r-c.r, g-c.g, b-c.b
		dist := dr*dr + dg*dg + db*db
		if dist < bestDist {
			bestDist = dist
			best = c
		}
	}
	return best.name
}
