package main

import (
	"fmt"
	"log"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	frameplayer "github.com/anrananran/frame-player"
	"github.com/anrananran/frame-player/clips"
	"github.com/anrananran/frame-player/common"
	"github.com/anrananran/frame-player/render"
)

const (
	baseWidth  = 640
	baseHeight = 480
)

type Game struct {
	frames int

	specName string
	clipName string
	surface  string

	player  *frameplayer.Player
	lib     *frameplayer.Library
	ui      *ebitenui.UI
	watcher *clips.Watcher

	paused    bool
	lastEvent string
	zoom      float32
}

func NewGame(specName, clipName string) (*Game, error) {
	doc, err := clips.LoadSpec[clips.SheetFileSpec](specName)
	if err != nil {
		return nil, err
	}
	cfg, lib, err := clips.Build(doc)
	if err != nil {
		return nil, err
	}
	player, err := frameplayer.New(cfg)
	if err != nil {
		return nil, err
	}

	g := &Game{
		specName: specName,
		clipName: clipName,
		surface:  cfg.Surface,
		player:   player,
		lib:      lib,
		zoom:     1,
	}
	g.ui = NewControlPanel(g)

	if mt, ok := clips.ModTime(specName); ok {
		log.Printf("using on-disk clip definitions for %s (modified %s)", specName, mt.Format(time.RFC3339))
	}

	if w, err := clips.NewWatcher("clips"); err != nil {
		log.Printf("clip watcher disabled: %v", err)
	} else {
		g.watcher = w
	}

	if err := g.selectClip(clipName); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) selectClip(name string) error {
	opts, ok := g.lib.Get(name)
	if !ok {
		return fmt.Errorf("unknown clip %q", name)
	}
	opts.OnCycleComplete = g.onCycle
	g.clipName = name
	g.paused = false
	g.lastEvent = ""
	return g.player.Play(opts)
}

func (g *Game) onCycle(ev frameplayer.CycleEvent) {
	switch ev.Kind {
	case frameplayer.CycleLoop:
		g.lastEvent = fmt.Sprintf("loop %d complete", ev.LoopsCompleted)
	case frameplayer.CycleSingleFrame:
		g.lastEvent = "single frame complete"
	}
}

// reload re-reads the clip document and restarts the current clip with the
// fresh definition. Tile geometry is fixed at player construction, so only
// the clip library is rebuilt.
func (g *Game) reload() {
	doc, err := clips.LoadSpec[clips.SheetFileSpec](g.specName)
	if err != nil {
		log.Printf("reload %s: %v", g.specName, err)
		return
	}
	_, lib, err := clips.Build(doc)
	if err != nil {
		log.Printf("reload %s: %v", g.specName, err)
		return
	}
	g.lib = lib
	g.ui = NewControlPanel(g)
	if _, ok := lib.Get(g.clipName); !ok {
		names := lib.Names()
		if len(names) == 0 {
			return
		}
		g.clipName = names[0]
	}
	if err := g.selectClip(g.clipName); err != nil {
		log.Printf("reload %s: %v", g.specName, err)
	}
}

func (g *Game) Update() error {
	g.frames++

	if g.watcher != nil {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
			} else {
				log.Printf("clip definition changed: %s", path)
				g.reload()
			}
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
			} else {
				log.Printf("clip watcher: %v", err)
			}
		default:
		}
	}

	g.ui.Update()
	g.player.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	surf := render.Surface(g.surface)
	if surf == nil {
		surf = g.player.Surface()
	}
	if surf != nil {
		g.zoom = common.Lerp(g.zoom, g.targetZoom(surf), 0.15)
		s := float64(g.zoom)
		w, h := surf.Bounds().Dx(), surf.Bounds().Dy()

		var op ebiten.DrawImageOptions
		op.GeoM.Scale(s, s)
		op.GeoM.Translate((baseWidth-float64(w)*s)/2, (baseHeight-float64(h)*s)/2)
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(surf, &op)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"clip: %s    state: %s    frame: %d/%d    loops: %d    %s\nFrames: %d    FPS: %.2f",
		g.clipName, g.player.State(), g.player.Cursor(), g.player.FrameCount(),
		g.player.LoopsCompleted(), g.lastEvent, g.frames, ebiten.ActualFPS(),
	))

	g.ui.Draw(screen)
}

func (g *Game) targetZoom(surf *ebiten.Image) float32 {
	h := surf.Bounds().Dy()
	if h == 0 {
		return 1
	}
	return float32(baseHeight) * 0.6 / float32(h)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
