package runner

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/office-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar  = '█'
	FloorChar   = '═'
	FloorFill   = '░'
	CeilingChar = '▔'
)

type glyph struct {
	r rune
	c core.Color
}

var obstacleGlyphs = map[string]glyph{
	KindCabinet: {'▓', core.ColorGray},
	KindChair:   {'▒', core.ColorBlue},
	KindMonitor: {'▣', core.ColorCyan},
	KindPrinter: {'█', core.ColorWhite},
}

var collectibleGlyphs = map[string]glyph{
	KindCoffee:    {'●', core.ColorBrown},
	KindPaperclip: {'§', core.ColorGray},
	KindStapler:   {'╤', core.ColorRed},
	KindNotebook:  {'▤', core.ColorBrightBlue},
}

var effectColors = map[Effect]core.Color{
	EffectSpeed:        core.ColorBrown,
	EffectInvincible:   core.ColorBrightYellow,
	EffectMagnet:       core.ColorMagenta,
	EffectDoublePoints: core.ColorGreen,
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	snap := g.Snapshot()
	phase := float64(time.Now().UnixMilli()) / 50
	DrawSnapshot(dst, &snap, phase)
}

// DrawSnapshot renders a snapshot onto a character screen. The top row is
// the HUD, the bottom row lists active power-ups and the world is scaled
// into the rows between. phase drives the cosmetic speed-boost wobble.
func DrawSnapshot(dst *core.Screen, snap *Snapshot, phase float64) {
	dst.Clear()
	if dst.Width() < 10 || dst.Height() < 6 {
		dst.DrawText(0, 0, "too small", core.ColorRed)
		return
	}

	v := newViewport(dst, snap)
	floorRow := v.row(snap.World.FloorY())

	dst.DrawHLine(0, v.top, dst.Width(), CeilingChar, core.ColorGray)
	dst.DrawHLine(0, floorRow, dst.Width(), FloorChar, core.ColorGray)
	for y := floorRow + 1; y <= v.bottom; y++ {
		dst.DrawHLine(0, y, dst.Width(), FloorFill, core.ColorBrown)
	}

	for _, o := range snap.Obstacles {
		gl, ok := obstacleGlyphs[o.Kind]
		if !ok {
			gl = glyph{'#', core.ColorRed}
		}
		v.fill(o.Bounds, gl)
	}

	for _, c := range snap.Collectibles {
		gl, ok := collectibleGlyphs[c.Kind]
		if !ok {
			gl = glyph{'*', core.ColorYellow}
		}
		v.fill(c.Bounds, gl)
	}

	drawPlayer(v, snap, phase)
	drawHUD(dst, snap)
	drawPowerUps(dst, snap)

	switch {
	case !snap.Started:
		drawCenteredMessage(dst, "OFFICE RUNNER", "Press Space to start")
	case snap.GameOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", snap.Score))
	case snap.Paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// viewport maps world units onto screen cells.
type viewport struct {
	dst    *core.Screen
	sx, sy float64
	top    int
	bottom int
}

func newViewport(dst *core.Screen, snap *Snapshot) viewport {
	top, bottom := 1, dst.Height()-2
	return viewport{
		dst:    dst,
		sx:     float64(dst.Width()) / snap.World.Width,
		sy:     float64(bottom-top+1) / snap.World.Height,
		top:    top,
		bottom: bottom,
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x * v.sx))
}

func (v viewport) row(y float64) int {
	return core.Clamp(v.top+int(math.Floor(y*v.sy)), v.top, v.bottom)
}

// fill draws a rectangle covering at least one cell, clipped to the playfield.
func (v viewport) fill(r core.Rect, gl glyph) {
	x0, x1 := v.col(r.X), int(math.Ceil(r.Right()*v.sx))
	y0, y1 := v.row(r.Y), v.row(r.Bottom()-0.001)
	w := max(1, x1-x0)
	h := max(1, y1-y0+1)
	v.dst.DrawRect(x0, y0, w, h, gl.r, gl.c)
}

func drawPlayer(v viewport, snap *Snapshot, phase float64) {
	r := snap.Player
	if snap.Boosting {
		r.X += snap.WobbleAmplitude * math.Sin(phase)
	}

	color := core.ColorGreen
	for _, p := range snap.PowerUps {
		switch p.Effect {
		case EffectInvincible:
			color = core.ColorBrightYellow
		case EffectMagnet:
			if color == core.ColorGreen {
				color = core.ColorMagenta
			}
		}
	}
	v.fill(r, glyph{PlayerChar, color})
}

func drawHUD(dst *core.Screen, snap *Snapshot) {
	left := fmt.Sprintf(" Score: %d ", snap.Score)
	dst.DrawText(1, 0, left, core.ColorWhite)

	const barW = 10
	filled := int(snap.Progress * barW)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)
	right := fmt.Sprintf(" Lv %d %s Spd %.1f ", snap.Level, bar, snap.Speed)
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right, core.ColorCyan)
}

func drawPowerUps(dst *core.Screen, snap *Snapshot) {
	y := dst.Height() - 1
	x := 1
	for _, p := range snap.PowerUps {
		label := fmt.Sprintf(" %s %.1fs ", p.Effect.Label(), p.RemainingMs/1000)
		if p.Effect == EffectSpeed {
			label = fmt.Sprintf(" %s %.1fs (to %d) ", p.Effect.Label(), p.RemainingMs/1000, snap.SpeedTarget)
		}
		dst.DrawText(x, y, label, effectColors[p.Effect])
		x += len([]rune(label)) + 1
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorWhite)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle, core.ColorWhite)
}
