// Package clips loads sprite-sheet and clip definitions from YAML documents.
// A document describes one sheet (image locator, tile size, layout direction)
// and the named playback clips cut from it. Documents are embedded in the
// binary and can be overridden by files on disk, which makes them editable
// while a host is running.
package clips

import (
	"fmt"

	"gopkg.in/yaml.v3"

	frameplayer "github.com/anrananran/frame-player"
)

// SheetSpec describes the sprite sheet a document's clips index into.
type SheetSpec struct {
	Image      string `yaml:"image"`
	Surface    string `yaml:"surface"`
	TileWidth  int    `yaml:"tile_w"`
	TileHeight int    `yaml:"tile_h"`
	FrameCount int    `yaml:"frame_count"`
	Direction  string `yaml:"direction"`
}

// ClipSpec is one named playback range. A nil To selects the sheet's last
// frame; a zero FPS falls back to the player default.
type ClipSpec struct {
	From int  `yaml:"from"`
	To   *int `yaml:"to"`
	Loop int  `yaml:"loop"`
	FPS  int  `yaml:"fps"`
}

// SheetFileSpec is the top-level shape of a clip definition document.
type SheetFileSpec struct {
	Sheet SheetSpec           `yaml:"sheet"`
	Clips map[string]ClipSpec `yaml:"clips"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("clips: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("clips: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Build converts a parsed document into a player configuration and a library
// of its named clips.
func Build(doc SheetFileSpec) (frameplayer.Config, *frameplayer.Library, error) {
	dir, err := frameplayer.ParseDirection(doc.Sheet.Direction)
	if err != nil {
		return frameplayer.Config{}, nil, err
	}

	cfg := frameplayer.Config{
		Surface:    doc.Sheet.Surface,
		SheetPath:  doc.Sheet.Image,
		TileWidth:  doc.Sheet.TileWidth,
		TileHeight: doc.Sheet.TileHeight,
		FrameCount: doc.Sheet.FrameCount,
		Direction:  dir,
	}

	lib := frameplayer.NewLibrary()
	for name, c := range doc.Clips {
		to := frameplayer.LastFrame
		if c.To != nil {
			to = *c.To
		}
		lib.Register(name, frameplayer.PlaybackOptions{
			From: c.From,
			To:   to,
			Loop: c.Loop,
			FPS:  c.FPS,
		})
	}
	return cfg, lib, nil
}
