package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"uberdrive/internal/drive"
	"uberdrive/internal/render"
)

const groundSize = render.GroundSize

type glyph struct {
	r     rune
	style tcell.Style
}

var surfaceGlyphs = litGlyphs(render.SceneLight())

// litGlyphs colours each surface the way the desktop light shows the flat
// ground.
func litGlyphs(light render.Hemispheric) map[render.Surface]glyph {
	up := mgl32.Vec3{0, 1, 0}
	color := func(c render.RGB) tcell.Color {
		c = light.Lit(c, up)
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	grass, road := color(render.Palette.Grass), color(render.Palette.Road)
	return map[render.Surface]glyph{
		render.Grass:    {' ', tcell.StyleDefault.Background(grass)},
		render.Sidewalk: {'░', tcell.StyleDefault.Foreground(color(render.Palette.Sidewalk)).Background(grass)},
		render.Road:     {' ', tcell.StyleDefault.Background(road)},
		render.RoadLine: {'·', tcell.StyleDefault.Foreground(color(render.Palette.Line)).Background(road)},
	}
}

var (
	sphereStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDimGray).Bold(true)
	carStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	statusStyle = tcell.StyleDefault.Reverse(true)
)

// arrows is indexed by screen direction in eighths of a turn, counter-
// clockwise from east.
var arrows = [8]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}

// view maps the ground plane onto a w x h cell area viewed from above with
// +z toward the top of the screen and +x to the right, matching the 3D
// camera.
type view struct {
	w, h int
}

func (v view) project(x, z float64) (col, row int, ok bool) {
	if v.w <= 0 || v.h <= 0 {
		return 0, 0, false
	}
	half := groundSize / 2
	fx := (x + half) / groundSize
	fz := (half - z) / groundSize
	if fx < 0 || fx > 1 || fz < 0 || fz > 1 {
		return 0, 0, false
	}
	return int(fx*float64(v.w-1) + 0.5), int(fz*float64(v.h-1) + 0.5), true
}

// unproject returns the world position a cell stands for.
func (v view) unproject(col, row int) (x, z float64) {
	fx := float64(col) / math.Max(1, float64(v.w-1))
	fz := float64(row) / math.Max(1, float64(v.h-1))
	return fx*groundSize - groundSize/2, groundSize/2 - fz*groundSize
}

// headingGlyph returns the arrow for the direction the car travels at
// heading h.
func headingGlyph(h float64) rune {
	right, up := -math.Sin(h), -math.Cos(h)
	o := int(math.Round(math.Atan2(up, right) / (math.Pi / 4)))
	return arrows[((o%8)+8)%8]
}

// draw renders one frame: the ground with its road grid, the sphere at the
// origin, the car when it is loaded, and a status line on the last row.
func draw(s tcell.Screen, kin drive.Kinematics, state drive.Lifecycle, status string) {
	w, h := s.Size()
	s.Clear()
	v := view{w: w, h: h - 1}

	for row := 0; row < v.h; row++ {
		for col := 0; col < v.w; col++ {
			x, z := v.unproject(col, row)
			g := surfaceGlyphs[render.Classify(x, z)]
			s.SetContent(col, row, g.r, nil, g.style)
		}
	}

	if col, row, ok := v.project(0, 0); ok {
		s.SetContent(col, row, 'O', nil, sphereStyle)
	}
	if state == drive.Loaded {
		if col, row, ok := v.project(kin.Position.X, kin.Position.Z); ok {
			s.SetContent(col, row, headingGlyph(kin.Heading), nil, carStyle)
		}
	}

	drawText(s, 0, h-1, w, status, statusStyle)
	s.Show()
}

func drawText(s tcell.Screen, x, y, maxW int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxW {
			return
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
	for ; col < x+maxW; col++ {
		s.SetContent(col, y, ' ', nil, style)
	}
}

func statusLine(kin drive.Kinematics, state drive.Lifecycle, note string) string {
	if state != drive.Loaded {
		return fmt.Sprintf(" %s | q quit", note)
	}
	return fmt.Sprintf(" heading %.2f  turn %+.4f  speed %.3f  x %.2f z %.2f | arrows/WASD drive, q quit",
		kin.Heading, kin.AngularSpeed, kin.LinearSpeed, kin.Position.X, kin.Position.Z)
}
