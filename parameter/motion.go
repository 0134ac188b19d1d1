package parameter

// Shape selector range, shapes 0..NumShapes-1 (quads, triangles, hexagons, discs, spheres, cubes, cones, torus)
const NumShapes = 8

// Oscillator integer units to world units
const (
	// ThetaUnitsPerDegree: theta streams count hundredths of a degree
	ThetaUnitsPerDegree = 100.0

	// ThetaFull is one revolution in theta units
	ThetaFull = 36000

	// LengthUnit scales radius and altitude streams (thousandths)
	LengthUnit = 0.001

	// HueSegment is the hue span of one primary-to-primary blend, full wheel is 3 segments
	HueSegment = 1000
	HueFull    = 3 * HueSegment

	// VervecLength is the half-width of a shape's orientation vector
	VervecLength = 0.11

	// DefaultTransparency is the alpha applied to every element
	DefaultTransparency = 1.0
)
