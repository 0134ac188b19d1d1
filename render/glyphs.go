package render

import (
	"math"

	"github.com/lixenwraith/stonerview/parameter"
)

// Shape indices in selector order
const (
	ShapeQuads = iota
	ShapeTriangles
	ShapeHexagons
	ShapeDiscs
	ShapeSpheres
	ShapeCubes
	ShapeCones
	ShapeTorus
)

// ShapeNames are the user-facing names, index+1 is the forced-shape option value
var ShapeNames = [parameter.NumShapes]string{
	"quads", "triangles", "hexagons", "discs", "spheres", "cubes", "cones", "torus",
}

// Filled and outline glyph per shape
var (
	solidGlyphs = [parameter.NumShapes]rune{'◆', '▲', '⬢', '●', '◉', '■', '▼', '◎'}
	wireGlyphs  = [parameter.NumShapes]rune{'◇', '△', '⬡', '○', '◌', '□', '▽', 'O'}
)

// Triangles point along their orientation vector: right, up, left, down
var (
	solidTriangles = [4]rune{'▶', '▲', '◀', '▼'}
	wireTriangles  = [4]rune{'▷', '△', '◁', '▽'}
)

// ShapeByName returns the forced-shape option value for a name, 0 for "random" or unknown names
func ShapeByName(name string) int {
	for i, n := range ShapeNames {
		if n == name {
			return i + 1
		}
	}
	return 0
}

// glyph picks the rune for a shape, using the orientation vector for shapes with a facing
func glyph(shape int, wire bool, vx, vy float32) rune {
	if shape < 0 || shape >= parameter.NumShapes {
		shape = ShapeQuads
	}
	if shape == ShapeTriangles {
		q := quadrant(vx, vy)
		if wire {
			return wireTriangles[q]
		}
		return solidTriangles[q]
	}
	if wire {
		return wireGlyphs[shape]
	}
	return solidGlyphs[shape]
}

// quadrant buckets a direction into 0=right 1=up 2=left 3=down
func quadrant(vx, vy float32) int {
	a := math.Atan2(float64(vy), float64(vx))
	q := int(math.Floor((a+math.Pi/4)/(math.Pi/2))) % 4
	if q < 0 {
		q += 4
	}
	return q
}
