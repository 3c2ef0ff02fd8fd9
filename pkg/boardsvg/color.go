package boardsvg

import (
	"fmt"
	"hash/fnv"
)

// netHue derives a deterministic HSL hue in [0, 360) from a net name,
// so the same net always renders in the same color across runs. S and
// L are fixed per §6 (70%, 45%).
func netHue(name string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(h.Sum32() % 360)
}

// netColor returns the CSS hsl(...) color string for a net name.
func netColor(name string) string {
	return fmt.Sprintf("hsl(%d, 70%%, 45%%)", netHue(name))
}
