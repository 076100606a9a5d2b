package hop

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/voicehop/internal/config"
	"github.com/vovakirdan/voicehop/internal/core"
)

// Visual characters
const (
	AvatarChar   = '█'
	SurfaceChar  = '▀'
	BlockChar    = '▒'
	HazardChar   = '▲'
	VoidChar     = '~'
	LevelFull    = '#'
	LevelEmpty   = '-'
	levelBarSize = 10
)

// camera maps world units onto screen cells. The avatar is pinned to the
// horizontal centre; the vertical range covers the spawn height down to the fall line.
type camera struct {
	w, h        int
	worldTop    float64
	rowsPerUnit float64
	colsPerUnit float64
}

func newCamera(w, h int, cfg config.HopConfig) camera {
	if w < 1 {
		w = 1
	}
	if h < 2 {
		h = 2
	}
	top := math.Max(cfg.Physics.MaxY, cfg.Player.SpawnY) + cfg.Player.Height
	bottom := cfg.Collision.FallY - cfg.Player.Height/2
	span := math.Max(top-bottom, 1)

	rows := float64(h-1) / span
	return camera{
		w:           w,
		h:           h,
		worldTop:    top,
		rowsPerUnit: rows,
		colsPerUnit: math.Max(2*rows, 1),
	}
}

// halfWidthUnits returns how many world units fit between the centre and a side edge.
func (c camera) halfWidthUnits() float64 {
	return float64(c.w) / 2 / c.colsPerUnit
}

// row converts a world height to a screen row (row 0 is the HUD).
func (c camera) row(y float64) int {
	return 1 + int(math.Floor((c.worldTop-y)*c.rowsPerUnit))
}

// col converts a world x to a screen column relative to originX.
func (c camera) col(x, originX float64) int {
	return c.w/2 + int(math.Floor((x-originX)*c.colsPerUnit))
}

// Render draws the current frame to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	f := g.session.Frame()

	if f.Phase == PhaseSplash {
		g.drawSplash(dst, f)
		return
	}

	cam := g.cam
	if cam.w != dst.Width() || cam.h != dst.Height() {
		cam = newCamera(dst.Width(), dst.Height(), g.cfg)
	}
	origin := f.Avatar.X

	// Fall line
	dst.DrawHLine(0, cam.row(g.cfg.Collision.FallY), dst.Width(), VoidChar, core.ColorBlue)

	for _, p := range f.Platforms {
		g.drawPlatform(dst, cam, origin, p)
	}
	g.drawAvatar(dst, cam, origin, f.Avatar)
	g.drawHUD(dst, f)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawPlatform renders a platform block and its hazard.
func (g *Game) drawPlatform(dst *core.Screen, cam camera, origin float64, p PlatformView) {
	ground := g.cfg.Field.GroundLevel
	left := cam.col(p.X-p.Width/2, origin)
	right := cam.col(p.X+p.Width/2, origin) - 1
	top := cam.row(ground + p.Height)
	bottom := cam.row(ground) - 1
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}

	color := core.ColorGray
	if p.Scored {
		color = core.ColorPink
	}
	for y := top; y <= bottom; y++ {
		r := BlockChar
		if y == top {
			r = SurfaceChar
		}
		for x := left; x <= right; x++ {
			dst.SetColor(x, y, r, color)
		}
	}

	if p.Hazard != nil {
		dst.SetColor(cam.col(p.Hazard.X, origin), top-1, HazardChar, core.ColorRed)
	}
}

// drawAvatar renders the player's block at the horizontal centre.
func (g *Game) drawAvatar(dst *core.Screen, cam camera, origin float64, av AvatarView) {
	left := cam.col(av.X-av.Width/2, origin)
	right := cam.col(av.X+av.Width/2, origin) - 1
	top := cam.row(av.Y + av.Height/2)
	bottom := cam.row(av.Y-av.Height/2) - 1
	if right < left {
		right = left
	}
	if bottom < top {
		bottom = top
	}
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			dst.SetColor(x, y, AvatarChar, core.ColorBrightMagenta)
		}
	}
}

// drawHUD renders score, best and the loudness meter on the top row.
func (g *Game) drawHUD(dst *core.Screen, f Frame) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	scoreText := fmt.Sprintf(" Score: %d  Best: %d ", f.Score, f.Best)
	dst.DrawTextColor(2, 0, scoreText, core.ColorYellow)

	levelText := " Vol [" + levelBar(f.Level) + "] "
	dst.DrawTextColor(dst.Width()-len(levelText)-2, 0, levelText, core.ColorCyan)
}

// levelBar renders a loudness value in [0, 1] as a fixed-width bar.
func levelBar(level float64) string {
	n := int(math.Round(core.ClampF(level, 0, 1) * levelBarSize))
	return strings.Repeat(string(LevelFull), n) + strings.Repeat(string(LevelEmpty), levelBarSize-n)
}

// drawSplash renders the title screen shown until the start trigger.
func (g *Game) drawSplash(dst *core.Screen, f Frame) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-3, strings.ToUpper(g.title), core.ColorBrightRed)
	dst.DrawTextCentered(mid-1, "Make noise to fly right, stay quiet to sink.", core.ColorDefault)
	dst.DrawTextCentered(mid, "Land on platforms, dodge the spikes.", core.ColorDefault)
	dst.DrawTextCentered(mid+2, "Press SPACE or ENTER to start", core.ColorYellow)
	if f.Best > 0 {
		dst.DrawTextCentered(mid+4, fmt.Sprintf("Best: %d", f.Best), core.ColorCyan)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
