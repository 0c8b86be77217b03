package scene

import (
	"math"
	"strings"

	"github.com/tatianab/escape-room/internal/models"
)

// Marker is a glyph drawn at a floor position.
type Marker struct {
	At    models.Vec2
	Glyph rune
}

// Minimap draws a top-down view of the room, north (the door wall) up. Later
// markers overwrite earlier ones and the player is drawn last.
func Minimap(p Pose, cols, rows int, markers []Marker) []string {
	if cols < 2 || rows < 2 {
		return nil
	}
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat("·", cols))
	}

	bounds := p.Bounds
	if bounds <= 0 {
		bounds = 5
	}
	// Objects hang on the walls just outside the walkable square.
	extent := bounds + 0.5
	plot := func(at models.Vec2, g rune) {
		c := int(math.Round((at.X + extent) / (2 * extent) * float64(cols-1)))
		r := int(math.Round((at.Z + extent) / (2 * extent) * float64(rows-1)))
		c = max(0, min(cols-1, c))
		r = max(0, min(rows-1, r))
		grid[r][c] = g
	}

	for _, m := range markers {
		plot(m.At, m.Glyph)
	}
	plot(p.Position, playerGlyph(p))

	out := make([]string, rows)
	for r, line := range grid {
		out[r] = string(line)
	}
	return out
}

func playerGlyph(p Pose) rune {
	switch p.Compass() {
	case "N", "NE", "NW":
		return '^'
	case "S", "SE", "SW":
		return 'v'
	case "W":
		return '<'
	default:
		return '>'
	}
}
