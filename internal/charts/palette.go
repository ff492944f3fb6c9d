package charts

// Spotify brand colors.
const (
	SpotifyGreen = "#1DB954"
	Accent       = "#FF6B35"
	Ink          = "#141331"
	Muted        = "#666666"
	Subtle       = "#888888"
)

// SpotifyPalette colors categorical Spotify charts.
var SpotifyPalette = []string{
	"#1DB954", "#1ED760", "#191414", "#FFFFFF",
	"#535353", "#B3B3B3", "#000000", "#FF6B35",
	"#F037A5", "#7856FF", "#2D46B9", "#509BF5",
	"#FFD23F", "#FF4632", "#AF2896",
}

// SteamPalette colors the top-games pie, one entry per slice.
var SteamPalette = []string{
	"#00008B", "#32CD32", "#00CED1", "#A8D7E7",
	"#808080", "#FF4500", "#0000FF", "#3D3A38",
	"#800080", "#FFA500", "#006400", "#8B0000",
	"#FFD700", "#4682B4", "#2E8B57",
}

// Category10 is the d3 scheme used by the top-artists pie.
var Category10 = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

func colorRange(colors []string) []interface{} {
	out := make([]interface{}, len(colors))
	for i, c := range colors {
		out[i] = c
	}
	return out
}
