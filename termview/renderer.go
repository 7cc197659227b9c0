// Package termview draws the arena in a terminal.
package termview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/pthm-cable/trails/components"
	"github.com/pthm-cable/trails/store"
)

// Glyphs for each kind of cell content.
const (
	GlyphWall     = "🧱"
	GlyphBase     = "🏠"
	GlyphSugar    = "🍬"
	GlyphAnt      = "🐜"
	GlyphCarrying = "🍯"
	GlyphEmpty    = "·"
)

// Pheromone shades from faint to strong.
var shades = []string{"░", "▒", "▓", "█"}

// cellWidth is the number of terminal columns per arena cell.
const cellWidth = 2

// Source is the read-only view of a running simulation.
type Source interface {
	Store() *store.Store
	TickCount() uint64
	FoodInBase() int
}

// Renderer draws the arena onto a tcell screen.
type Renderer struct {
	screen      tcell.Screen
	width       int // arena cells
	height      int
	maxStrength uint32
}

// NewRenderer creates a renderer for a width x height arena.
func NewRenderer(screen tcell.Screen, width, height int, maxStrength uint32) *Renderer {
	if maxStrength == 0 {
		maxStrength = 1
	}
	return &Renderer{screen: screen, width: width, height: height, maxStrength: maxStrength}
}

// DrawFrame renders the arena and a one-line HUD below it.
func (r *Renderer) DrawFrame(src Source, paused bool, speed int) {
	r.screen.Clear()
	st := src.Store()

	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			glyph, style := r.cellGlyph(st, components.CoarsePosition{X: x, Y: y})
			r.putGlyph(x*cellWidth, y, glyph, style)
		}
	}

	status := fmt.Sprintf("tick %d  food_in_base %d  ants %d  speed %dx",
		src.TickCount(), src.FoodInBase(), st.Count(components.TypeAnt), speed)
	if paused {
		status += "  [paused]"
	}
	r.drawText(0, r.height+1, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.drawText(0, r.height+2, "space pause  +/- speed  q quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// cellGlyph picks what to show for a cell. Walls win over the base and
// sugar, which win over ants, which win over trails.
func (r *Renderer) cellGlyph(st *store.Store, c components.CoarsePosition) (string, tcell.Style) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)

	var (
		hasBase, hasSugar, hasAnt, carrying bool
		food, base                          uint32
	)
	for _, id := range st.EntitiesInCell(c) {
		switch st.Type(id) {
		case components.TypeWall:
			return GlyphWall, style
		case components.TypeBase:
			hasBase = true
		case components.TypeSugar:
			hasSugar = true
		case components.TypeAnt:
			hasAnt = true
			carrying = carrying || st.IsCarryingFood(id)
		case components.TypePheromone:
			if st.PheromoneType(id) == components.PheromoneFood {
				food = st.Intensity(id)
			} else {
				base = st.Intensity(id)
			}
		}
	}

	switch {
	case hasBase:
		return GlyphBase, style
	case hasSugar:
		return GlyphSugar, style
	case carrying:
		return GlyphCarrying, style
	case hasAnt:
		return GlyphAnt, style
	case food >= base && food > 0:
		return r.shade(food), style.Foreground(tcell.ColorGreen)
	case base > 0:
		return r.shade(base), style.Foreground(tcell.ColorBlue)
	}
	return GlyphEmpty, style.Foreground(tcell.ColorDimGray)
}

// shade maps a strength onto one of the shade glyphs.
func (r *Renderer) shade(strength uint32) string {
	i := int(uint64(strength) * uint64(len(shades)) / uint64(r.maxStrength+1))
	return shades[min(i, len(shades)-1)]
}

// putGlyph draws a glyph and fills the rest of the cell so narrow glyphs
// line up with wide ones.
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if w := runewidth.StringWidth(glyph); w < cellWidth {
		fill := ' '
		if glyph != GlyphEmpty {
			fill = runes[0]
		}
		r.screen.SetContent(x+1, y, fill, nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
