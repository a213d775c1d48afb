package model

// Palette is the fixed set of project color tokens (Morandi tones). New
// projects rotate through it; tokens are stored as-is and never
// re-validated on import.
var Palette = []string{
	"#D8E2DC", // sage
	"#FFE5D9", // peach
	"#FFCAD4", // pink
	"#F4ACB7", // rose
	"#9D8189", // dusky purple
	"#B7C3C0", // gray blue
	"#E2D1C3", // sand
	"#ECE4DB", // linen
	"#D4A373", // tan
}

// ColorForIndex returns the palette token for the nth created project.
func ColorForIndex(n int) string {
	if n < 0 {
		n = -n
	}
	return Palette[n%len(Palette)]
}

// IntensityShades maps each palette token to its five intensity steps,
// lightest (0) to deepest (4). Unknown tokens fall back to the token itself.
var IntensityShades = map[string][5]string{
	"#D8E2DC": {"#f1f5f3", "#d8e2dc", "#b7c9be", "#96b0a1", "#759784"},
	"#FFE5D9": {"#fff5f1", "#ffe5d9", "#ffccb8", "#ffb397", "#ff9a76"},
	"#FFCAD4": {"#fff4f6", "#ffcad4", "#ffa6b6", "#ff8298", "#ff5e7a"},
	"#F4ACB7": {"#fdf3f4", "#f4acb7", "#ee8192", "#e8566d", "#e22b48"},
	"#9D8189": {"#f2eff0", "#9d8189", "#836a71", "#6a5359", "#503c41"},
	"#B7C3C0": {"#f4f6f5", "#b7c3c0", "#98a9a5", "#798f8a", "#5a756f"},
	"#E2D1C3": {"#f9f6f4", "#e2d1c3", "#d2b8a5", "#c29f87", "#b28669"},
	"#ECE4DB": {"#faf8f6", "#ece4db", "#decbb9", "#d0b297", "#c29975"},
	"#D4A373": {"#f8f1ea", "#d4a373", "#bf8b56", "#a3723b", "#875920"},
}

// ShadeFor returns the rendered color for a project color at an intensity.
func ShadeFor(color string, intensity int) string {
	shades, ok := IntensityShades[color]
	if !ok {
		return color
	}
	if intensity < MinIntensity {
		intensity = MinIntensity
	}
	if intensity > MaxIntensity {
		intensity = MaxIntensity
	}
	return shades[intensity]
}
