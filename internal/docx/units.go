package docx

import "math"

// Length conversions used throughout the package.
const (
	TwipsPerInch = 1440
	EMUPerInch   = 914400
	EMUPerCm     = 360000
	cmPerInch    = 2.54
)

// CmToTwips converts centimetres to twentieths of a point.
func CmToTwips(cm float64) int {
	return int(math.Round(cm / cmPerInch * TwipsPerInch))
}

// InchToEMU converts inches to English Metric Units.
func InchToEMU(in float64) int64 {
	return int64(math.Round(in * EMUPerInch))
}

// halfPoints converts a point size to the half-point units of w:sz.
func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

// pointsToTwips converts points to twips for w:spacing.
func pointsToTwips(pt float64) int {
	return int(math.Round(pt * 20))
}
