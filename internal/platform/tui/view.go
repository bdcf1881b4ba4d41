package tui

import (
	"fmt"
	"math"

	"beatdash/internal/core"
	"beatdash/internal/level"
	"beatdash/internal/sim"
)

// Glyphs for the run view.
const (
	PlayerChar   = '█'
	SpikeChar    = '▲'
	OverheadChar = '▼'
	PlatformChar = '▓'
	GroundChar   = '═'
	BarChar      = '░'
)

// RunHUD carries the static labels shown around the simulation.
type RunHUD struct {
	Title string
	Tier  string
}

// drawRun renders one frame of the session onto the screen buffer. The
// world is scaled to whatever cell grid the terminal currently has.
func drawRun(dst *core.Screen, s *sim.Session, hud RunHUD) {
	dst.Clear()

	w := dst.Width()
	h := dst.Height()
	if w <= 0 || h <= 0 {
		return
	}
	scaleX := float64(w) / sim.WorldWidth
	scaleY := float64(h) / sim.WorldHeight

	groundRow := int(sim.GroundY * scaleY)
	if groundRow >= h {
		groundRow = h - 1
	}

	songTime := s.SongTime()
	world := s.World()

	drawBars(dst, s.BarHeights(), groundRow, scaleY)

	dst.DrawHLine(0, groundRow, w, GroundChar, core.ColorGray)

	speed := s.ScrollSpeed()
	for _, o := range world.Obstacles() {
		rect := o.HitRect(songTime, speed, sim.GroundY)
		glyph, color := obstacleLook(o.Kind)
		drawWorldRect(dst, rect.X*scaleX, rect.Y*scaleY, rect.W*scaleX, rect.H*scaleY, glyph, color)
	}

	playerColor := core.ColorBrightGreen
	if world.GameOver() {
		playerColor = core.ColorBrightRed
	}
	pr := world.PlayerRect()
	drawWorldRect(dst, pr.X*scaleX, pr.Y*scaleY, pr.W*scaleX, pr.H*scaleY, PlayerChar, playerColor)

	drawHUD(dst, s, hud)

	switch {
	case world.GameOver():
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("%.1f%%  |  R restart  T difficulty  Esc menu", s.Completion()))
	case s.Paused():
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	case songTime < 0:
		countdown := int(math.Ceil(-songTime))
		dst.DrawTextCentered(h/2, fmt.Sprintf("GET READY  %d", countdown))
	}
}

// obstacleLook picks the glyph and color for an obstacle kind.
func obstacleLook(k level.Kind) (rune, core.Color) {
	switch k {
	case level.SpikeOverhead:
		return OverheadChar, core.ColorBrightRed
	case level.Platform:
		return PlatformChar, core.ColorBrightCyan
	default:
		return SpikeChar, core.ColorOrange
	}
}

// drawWorldRect fills the cells covered by a screen-space rectangle,
// always at least one cell so thin shapes stay visible.
func drawWorldRect(dst *core.Screen, x, y, w, h float64, glyph rune, color core.Color) {
	x0 := int(x)
	y0 := int(y)
	x1 := int(x + w)
	y1 := int(y + h)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	dst.FillRect(x0, y0, x1-x0, y1-y0, glyph, color)
}

// drawBars renders the audio-reactive bars rising from the ground line.
func drawBars(dst *core.Screen, heights []float64, groundRow int, scaleY float64) {
	if len(heights) == 0 {
		return
	}
	w := dst.Width()
	barW := w / len(heights)
	if barW < 1 {
		barW = 1
	}
	for i, bh := range heights {
		rows := int(bh * scaleY)
		if rows <= 0 {
			continue
		}
		x := i * barW
		for row := 0; row < rows; row++ {
			y := groundRow - 1 - row
			dst.DrawHLine(x, y, barW, BarChar, core.ColorBlue)
		}
	}
}

// drawHUD draws the top status line: track and tier on the left,
// completion and jump count on the right.
func drawHUD(dst *core.Screen, s *sim.Session, hud RunHUD) {
	left := fmt.Sprintf(" %s [%s] ", hud.Title, hud.Tier)
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf(" %5.1f%%  jumps: %d ", s.Completion(), s.World().Jumps())
	dst.DrawTextColored(dst.Width()-len(right)-1, 0, right, core.ColorBrightWhite)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
