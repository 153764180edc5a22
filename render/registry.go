package render

import "github.com/hajimehoshi/ebiten/v2"

var (
	images   = map[string]*ebiten.Image{}
	surfaces = map[string]*ebiten.Image{}
)

// RegisterImage stores a sheet image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached sheet image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// RegisterSurface binds a drawable surface to a locator, so hosts can resolve
// a player's output by name.
func RegisterSurface(locator string, img *ebiten.Image) {
	if locator == "" || img == nil {
		return
	}
	surfaces[locator] = img
}

// Surface returns the surface bound to a locator, or nil.
func Surface(locator string) *ebiten.Image {
	if locator == "" {
		return nil
	}
	return surfaces[locator]
}
