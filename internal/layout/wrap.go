package layout

import "strings"

// Wrap greedily packs words into lines no wider than avail at the given font
// size: the next word joins the running line while the line still fits,
// otherwise it starts a new one. A string that already fits comes back as a
// single line equal to the trimmed input. A single word wider than avail
// gets a line of its own rather than being split mid-word; exact typographic
// fidelity is not a goal.
func Wrap(s string, size, avail float64, measure Measurer) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measure(candidate, size) <= avail {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	return append(lines, line)
}
