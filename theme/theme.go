// Package theme is the static registry mapping theme identifiers to their
// visual and audio configuration. Pure data: the per-theme behavior that
// used to hide in identity-comparison chains is expressed as one complete
// descriptor per ID, resolved once by callers.
package theme

import "github.com/gdamore/tcell/v2"

// ID identifies a theme. The set is fixed; unknown values resolve to Default.
type ID string

const (
	Velvet  ID = "VELVET"
	Noir    ID = "NOIR"
	Ember   ID = "EMBER"
	Tide    ID = "TIDE"
	Starlit ID = "STARLIT"
	Linen   ID = "LINEN"
	Blush   ID = "BLUSH"
	Winter  ID = "WINTER"
	Yule    ID = "YULE"
	Berry   ID = "BERRY"
)

// Default is the fail-closed theme for unknown identifiers.
const Default = Velvet

// Category selects the reveal presentation variant.
type Category uint8

const (
	CategoryStandard Category = iota // envelope
	CategoryHoliday                  // gift box
)

// DrawStyle selects the particle draw routine.
type DrawStyle uint8

const (
	DrawSoftBlob    DrawStyle = iota // radial soft discs
	DrawRing                         // stroked rings
	DrawStarfield                    // static dots, rare glow flash
	DrawPaperFleck                   // small solid rectangles
	DrawFrostDisc                    // glow-blurred discs
	DrawMinimalPane                  // large low-opacity rectangles
	DrawBerryDot                     // palette-chosen circles
	DrawFallback                     // hue-randomized circles
)

// Colors are the four color roles every theme defines.
type Colors struct {
	Text      tcell.Color
	Accent    tcell.Color
	Paper     tcell.Color
	Container tcell.Color
}

// Theme is one registry entry.
type Theme struct {
	ID       ID
	Name     string
	Category Category
	Colors   Colors
	Font     string // font-class token
	Gradient string // background-gradient token
	Track    string // default soundtrack reference
	Swatch   tcell.Color
	Draw     DrawStyle
	Sway     bool // sinusoidal horizontal sway during update
}

func rgb(r, g, b int32) tcell.Color { return tcell.NewRGBColor(r, g, b) }

var registry = map[ID]Theme{
	Velvet: {
		ID: Velvet, Name: "Velvet", Category: CategoryStandard,
		Colors: Colors{Text: rgb(250, 232, 238), Accent: rgb(214, 51, 108), Paper: rgb(46, 18, 28), Container: rgb(94, 22, 48)},
		Font: "serif-flourish", Gradient: "crimson-dusk", Track: "velvet.wav",
		Swatch: rgb(214, 51, 108), Draw: DrawSoftBlob, Sway: true,
	},
	Noir: {
		ID: Noir, Name: "Noir", Category: CategoryStandard,
		Colors: Colors{Text: rgb(224, 224, 224), Accent: rgb(168, 168, 178), Paper: rgb(18, 18, 20), Container: rgb(40, 40, 44)},
		Font: "mono-clean", Gradient: "graphite", Track: "noir.wav",
		Swatch: rgb(120, 120, 128), Draw: DrawMinimalPane, Sway: false,
	},
	Ember: {
		ID: Ember, Name: "Ember", Category: CategoryStandard,
		Colors: Colors{Text: rgb(255, 236, 214), Accent: rgb(255, 126, 46), Paper: rgb(38, 20, 12), Container: rgb(90, 42, 18)},
		Font: "serif-warm", Gradient: "banked-coals", Track: "ember.wav",
		Swatch: rgb(255, 126, 46), Draw: DrawFallback, Sway: false,
	},
	Tide: {
		ID: Tide, Name: "Tide", Category: CategoryStandard,
		Colors: Colors{Text: rgb(222, 242, 248), Accent: rgb(72, 170, 210), Paper: rgb(12, 32, 44), Container: rgb(24, 70, 96)},
		Font: "sans-light", Gradient: "deep-current", Track: "tide.wav",
		Swatch: rgb(72, 170, 210), Draw: DrawRing, Sway: true,
	},
	Starlit: {
		ID: Starlit, Name: "Starlit", Category: CategoryStandard,
		Colors: Colors{Text: rgb(226, 230, 255), Accent: rgb(180, 190, 255), Paper: rgb(10, 12, 30), Container: rgb(28, 32, 64)},
		Font: "sans-light", Gradient: "midnight-sky", Track: "starlit.wav",
		Swatch: rgb(180, 190, 255), Draw: DrawStarfield, Sway: false,
	},
	Linen: {
		ID: Linen, Name: "Linen", Category: CategoryStandard,
		Colors: Colors{Text: rgb(64, 58, 48), Accent: rgb(164, 138, 96), Paper: rgb(242, 236, 222), Container: rgb(208, 196, 172)},
		Font: "serif-plain", Gradient: "parchment", Track: "linen.wav",
		Swatch: rgb(164, 138, 96), Draw: DrawPaperFleck, Sway: false,
	},
	Blush: {
		ID: Blush, Name: "Blush", Category: CategoryStandard,
		Colors: Colors{Text: rgb(82, 40, 56), Accent: rgb(236, 130, 166), Paper: rgb(252, 238, 244), Container: rgb(244, 196, 214)},
		Font: "serif-flourish", Gradient: "petal-wash", Track: "blush.wav",
		Swatch: rgb(236, 130, 166), Draw: DrawSoftBlob, Sway: true,
	},
	Winter: {
		ID: Winter, Name: "Winter", Category: CategoryHoliday,
		Colors: Colors{Text: rgb(230, 240, 250), Accent: rgb(150, 200, 240), Paper: rgb(16, 28, 44), Container: rgb(40, 70, 104)},
		Font: "sans-light", Gradient: "first-snow", Track: "winter.wav",
		Swatch: rgb(150, 200, 240), Draw: DrawFrostDisc, Sway: false,
	},
	Yule: {
		ID: Yule, Name: "Yule", Category: CategoryHoliday,
		Colors: Colors{Text: rgb(246, 240, 226), Accent: rgb(200, 48, 56), Paper: rgb(22, 40, 26), Container: rgb(46, 86, 52)},
		Font: "serif-warm", Gradient: "evergreen", Track: "yule.wav",
		Swatch: rgb(200, 48, 56), Draw: DrawFallback, Sway: true,
	},
	Berry: {
		ID: Berry, Name: "Berry", Category: CategoryHoliday,
		Colors: Colors{Text: rgb(250, 236, 240), Accent: rgb(190, 36, 80), Paper: rgb(40, 14, 24), Container: rgb(96, 26, 52)},
		Font: "serif-warm", Gradient: "mulled-wine", Track: "berry.wav",
		Swatch: rgb(190, 36, 80), Draw: DrawBerryDot, Sway: false,
	},
}

// BerryPalette is the fixed circle palette for DrawBerryDot.
var BerryPalette = []tcell.Color{
	rgb(190, 36, 80), rgb(230, 180, 70), rgb(70, 140, 90), rgb(240, 240, 230),
}

// All returns every registered ID in stable order.
func All() []ID {
	return []ID{Velvet, Noir, Ember, Tide, Starlit, Linen, Blush, Winter, Yule, Berry}
}

// Lookup returns the theme for id if registered.
func Lookup(id ID) (Theme, bool) {
	t, ok := registry[id]
	return t, ok
}

// Resolve maps a stored theme identifier to its Theme, failing closed to
// Default for anything unknown.
func Resolve(raw string) Theme {
	if t, ok := registry[ID(raw)]; ok {
		return t
	}
	return registry[Default]
}
