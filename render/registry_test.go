package render

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestRegistryKeys(t *testing.T) {
	img := ebiten.NewImage(2, 2)

	RegisterImage("sheet", img)
	if GetImage("sheet") != img {
		t.Fatalf("expected registered image back")
	}
	if GetImage("missing") != nil {
		t.Fatalf("expected nil for unknown key")
	}

	RegisterImage("", img)
	RegisterImage("nil", nil)
	if GetImage("") != nil || GetImage("nil") != nil {
		t.Fatalf("empty keys and nil images must not register")
	}

	RegisterSurface("demo", img)
	if Surface("demo") != img {
		t.Fatalf("expected registered surface back")
	}
	if Surface("") != nil || Surface("other") != nil {
		t.Fatalf("expected nil for unbound locators")
	}
}

func TestLoadImageResolvesFromCache(t *testing.T) {
	img := ebiten.NewImage(2, 2)
	RegisterImage("cached.png", img)

	got, err := LoadImage("cached.png")
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got != img {
		t.Fatalf("expected the cached image back")
	}

	if _, err := LoadImage(""); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if _, err := LoadImage("no-such-image.png"); err == nil {
		t.Fatalf("expected error for unknown image")
	}
}
