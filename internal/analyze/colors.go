package analyze

import "github.com/lucasb-eyer/go-colorful"

// Accent palette shared with the glass UI: green/orange/red signal colors
// on a dark background.
var (
	colorLow     = colorful.Color{R: 48 / 255.0, G: 209 / 255.0, B: 88 / 255.0}
	colorMid     = colorful.Color{R: 255 / 255.0, G: 159 / 255.0, B: 10 / 255.0}
	colorHigh    = colorful.Color{R: 255 / 255.0, G: 69 / 255.0, B: 58 / 255.0}
	colorNeutral = colorful.Color{R: 142 / 255.0, G: 142 / 255.0, B: 147 / 255.0}
	colorCanvas  = colorful.Color{R: 11 / 255.0, G: 16 / 255.0, B: 32 / 255.0}
)

// BandColor returns the display hex color ("#rrggbb") for a traffic band.
func BandColor(b Band) string {
	return bandColor(b).Hex()
}

// BandBackground returns a muted chip-background hex color for a band,
// blended toward the dark canvas in Lab space so hue survives the fade.
func BandBackground(b Band) string {
	return colorCanvas.BlendLab(bandColor(b), 0.22).Clamped().Hex()
}

// SeverityColor returns the display hex color for a verdict severity.
func SeverityColor(s Severity) string {
	switch s {
	case SeverityOK:
		return colorLow.Hex()
	case SeverityWarn:
		return colorMid.Hex()
	case SeverityDanger:
		return colorHigh.Hex()
	default:
		return colorNeutral.Hex()
	}
}

func bandColor(b Band) colorful.Color {
	switch b {
	case BandLow:
		return colorLow
	case BandMid:
		return colorMid
	case BandHigh:
		return colorHigh
	default:
		return colorNeutral
	}
}
