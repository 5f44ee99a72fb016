package render

import (
	"image"
	"math"
)

// Road-map layout in world units. The ground is cut into square blocks
// every BlockPattern units, separated by roads with a sidewalk on each side.
const (
	GroundSize    = 120.0
	BlockPattern  = 20.0
	RoadWidth     = 4.0
	SidewalkWidth = 1.0
	LineWidth     = 0.2
	DashLength    = 1.5
)

// Surface is what covers one point of the ground.
type Surface int

const (
	Grass Surface = iota
	Sidewalk
	Road
	RoadLine
)

// Classify returns what lies at a world position. Roads run along both
// axes; a dashed centre line runs along each road, broken at crossings.
func Classify(x, z float64) Surface {
	lx := math.Mod(x+GroundSize/2, BlockPattern)
	lz := math.Mod(z+GroundSize/2, BlockPattern)
	onX := lx < RoadWidth
	onZ := lz < RoadWidth
	switch {
	case onX && onZ:
		return Road
	case onX:
		if math.Abs(lx-RoadWidth/2) < LineWidth/2 && math.Mod(lz, 2*DashLength) < DashLength {
			return RoadLine
		}
		return Road
	case onZ:
		if math.Abs(lz-RoadWidth/2) < LineWidth/2 && math.Mod(lx, 2*DashLength) < DashLength {
			return RoadLine
		}
		return Road
	}
	if lx < RoadWidth+SidewalkWidth || lz < RoadWidth+SidewalkWidth ||
		lx >= BlockPattern-SidewalkWidth || lz >= BlockPattern-SidewalkWidth {
		return Sidewalk
	}
	return Grass
}

// GroundTexture paints a size x size road map covering the whole ground.
// Row 0 is the far (+z) edge, matching the ground mesh UVs.
func GroundTexture(size int, seed uint64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	pix := img.Pix

	set := func(x, y int, col RGB) {
		i := img.PixOffset(x, y)
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 255
	}

	scale := GroundSize / float64(size)
	for y := 0; y < size; y++ {
		wz := GroundSize/2 - (float64(y)+0.5)*scale
		for x := 0; x < size; x++ {
			wx := (float64(x)+0.5)*scale - GroundSize/2
			h := hash2D(seed, x, y)
			var col RGB
			switch Classify(wx, wz) {
			case Road:
				n := jitter(h, 6)
				col = Palette.Road.Add(n, n, n)
			case RoadLine:
				col = Palette.Line
			case Sidewalk:
				n := jitter(h, 4)
				col = Palette.Sidewalk.Add(n, n, n)
			default:
				col = Palette.Grass.Add(jitter(h, 8), jitter(h>>16, 14), jitter(h>>32, 6))
				if h>>56 == 0 {
					col = col.Mul(200)
				}
			}
			set(x, y, col)
		}
	}
	return img
}
