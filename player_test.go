package frameplayer

import (
	"context"
	"errors"
	"image"
	"testing"
)

// newTestPlayer returns a player whose frame table is a single row of frames
// and whose render step records the frame index it was asked to draw. The
// scheduler runs one step per Tick at FPS 60.
func newTestPlayer(t *testing.T, frames int) (*Player, *[]int) {
	t.Helper()
	p, err := New(Config{
		SheetPath:  "test-sheet.png",
		TileWidth:  8,
		TileHeight: 8,
		FrameCount: frames,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	p.tps = 60

	table, err := buildFrameTable(8*frames, 8, 8, 8, Horizontal)
	if err != nil {
		t.Fatalf("buildFrameTable: %v", err)
	}
	p.table = table

	drawn := &[]int{}
	p.draw = func(src image.Point) {
		*drawn = append(*drawn, src.X/8)
	}
	return p, drawn
}

func tick(p *Player, n int) {
	for i := 0; i < n; i++ {
		p.Tick()
	}
}

func TestForwardLoopPlayback(t *testing.T) {
	p, drawn := newTestPlayer(t, 8)

	var events []CycleEvent
	err := p.Play(PlaybackOptions{
		From: 0, To: 3, Loop: 2, FPS: 60,
		OnCycleComplete: func(ev CycleEvent) { events = append(events, ev) },
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if p.State() != StateTicking {
		t.Fatalf("expected ticking, got %v", p.State())
	}

	tick(p, 8)
	want := []int{0, 1, 2, 3, 0, 1, 2, 3}
	if len(*drawn) != len(want) {
		t.Fatalf("expected %d draws, got %d (%v)", len(want), len(*drawn), *drawn)
	}
	for i, f := range want {
		if (*drawn)[i] != f {
			t.Fatalf("draw %d: expected frame %d, got %d", i, f, (*drawn)[i])
		}
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 loop events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.Kind != CycleLoop {
			t.Fatalf("event %d: expected CycleLoop, got %v", i, ev.Kind)
		}
		if ev.Player != p {
			t.Fatalf("event %d: expected player reference", i)
		}
		if ev.LoopsCompleted != i+1 {
			t.Fatalf("event %d: expected %d loops, got %d", i, i+1, ev.LoopsCompleted)
		}
	}

	// the loop target is reached, so the next step halts without drawing or
	// notifying
	tick(p, 4)
	if len(*drawn) != len(want) {
		t.Fatalf("expected no draws after loop target, got %d", len(*drawn))
	}
	if len(events) != 2 {
		t.Fatalf("expected no events after loop target, got %d", len(events))
	}
	if p.Playing() {
		t.Fatalf("expected schedule cancelled after loop target")
	}
	if p.State() != StateCompleted {
		t.Fatalf("expected completed, got %v", p.State())
	}
}

func TestSingleFramePlayback(t *testing.T) {
	p, drawn := newTestPlayer(t, 8)

	var events []CycleEvent
	err := p.Play(PlaybackOptions{
		From: 2, To: 2, FPS: 60,
		OnCycleComplete: func(ev CycleEvent) { events = append(events, ev) },
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	tick(p, 5)
	if len(*drawn) != 1 || (*drawn)[0] != 2 {
		t.Fatalf("expected a single draw of frame 2, got %v", *drawn)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Kind != CycleSingleFrame {
		t.Fatalf("expected CycleSingleFrame, got %v", events[0].Kind)
	}
	if events[0].Player != nil {
		t.Fatalf("single-frame completion should carry no player reference")
	}
	if events[0].LoopsCompleted != 0 {
		t.Fatalf("single-frame completion should not count loops, got %d", events[0].LoopsCompleted)
	}
	if p.Playing() {
		t.Fatalf("expected schedule cancelled after single frame")
	}
}

func TestReversePlayback(t *testing.T) {
	p, drawn := newTestPlayer(t, 8)

	var events []CycleEvent
	err := p.Play(PlaybackOptions{
		From: 3, To: 0, Loop: 1, FPS: 60,
		OnCycleComplete: func(ev CycleEvent) { events = append(events, ev) },
	})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}

	tick(p, 4)
	want := []int{3, 2, 1, 0}
	for i, f := range want {
		if (*drawn)[i] != f {
			t.Fatalf("draw %d: expected frame %d, got %d", i, f, (*drawn)[i])
		}
	}
	if len(events) != 1 || events[0].LoopsCompleted != 1 {
		t.Fatalf("expected one wrap event, got %v", events)
	}
	if p.Cursor() != 3 {
		t.Fatalf("expected cursor wrapped back to 3, got %d", p.Cursor())
	}

	tick(p, 1)
	if len(*drawn) != 4 {
		t.Fatalf("expected halt after the single loop, got %d draws", len(*drawn))
	}
}

func TestInfiniteLoopKeepsTicking(t *testing.T) {
	p, drawn := newTestPlayer(t, 8)

	if err := p.Play(PlaybackOptions{From: 0, To: 3, FPS: 60}); err != nil {
		t.Fatalf("Play: %v", err)
	}

	tick(p, 20)
	if len(*drawn) != 20 {
		t.Fatalf("expected 20 draws, got %d", len(*drawn))
	}
	if !p.Playing() {
		t.Fatalf("infinite playback should still be scheduled")
	}
	if p.LoopsCompleted() != 5 {
		t.Fatalf("expected 5 completed loops, got %d", p.LoopsCompleted())
	}
}

func TestPlayReplacesActiveSchedule(t *testing.T) {
	p, drawn := newTestPlayer(t, 8)

	if err := p.Play(PlaybackOptions{From: 0, To: 3, FPS: 60}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	tick(p, 2)

	if err := p.Play(PlaybackOptions{From: 5, To: 7, FPS: 60}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if p.Cursor() != 5 {
		t.Fatalf("expected cursor reset to 5, got %d", p.Cursor())
	}
	if p.LoopsCompleted() != 0 {
		t.Fatalf("expected loop counter reset, got %d", p.LoopsCompleted())
	}

	tick(p, 3)
	want := []int{0, 1, 5, 6, 7}
	if len(*drawn) != len(want) {
		t.Fatalf("expected %d draws, got %v", len(want), *drawn)
	}
	for i, f := range want {
		if (*drawn)[i] != f {
			t.Fatalf("draw %d: expected frame %d, got %d", i, f, (*drawn)[i])
		}
	}
}

func TestPauseFreezesCursor(t *testing.T) {
	p, drawn := newTestPlayer(t, 8)

	if err := p.Play(PlaybackOptions{From: 0, To: 7, FPS: 60}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	tick(p, 3)
	p.SetPaused(true)
	tick(p, 10)
	if len(*drawn) != 3 {
		t.Fatalf("expected no draws while paused, got %d", len(*drawn))
	}
	cursor := p.Cursor()

	p.SetPaused(false)
	tick(p, 1)
	if (*drawn)[3] != cursor {
		t.Fatalf("expected playback to resume at frame %d, got %d", cursor, (*drawn)[3])
	}
}

func TestTickCadenceFollowsFPS(t *testing.T) {
	p, drawn := newTestPlayer(t, 8)

	// FPS 30 on a 60 TPS host steps every second tick.
	if err := p.Play(PlaybackOptions{From: 0, To: 7, FPS: 30}); err != nil {
		t.Fatalf("Play: %v", err)
	}
	tick(p, 8)
	if len(*drawn) != 4 {
		t.Fatalf("expected 4 draws over 8 host ticks, got %d", len(*drawn))
	}
}

func TestPlayDefaultsAndValidation(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, _ := newTestPlayer(t, 8)
		if err := p.Play(DefaultOptions()); err != nil {
			t.Fatalf("Play: %v", err)
		}
		if p.opts.To != 7 {
			t.Fatalf("expected To defaulted to last frame 7, got %d", p.opts.To)
		}
		if p.opts.FPS != 30 {
			t.Fatalf("expected FPS defaulted to 30, got %d", p.opts.FPS)
		}
	})

	t.Run("frame_count_caps_last_frame", func(t *testing.T) {
		p, _ := newTestPlayer(t, 8)
		p.cfg.FrameCount = 4
		if err := p.Play(DefaultOptions()); err != nil {
			t.Fatalf("Play: %v", err)
		}
		if p.opts.To != 3 {
			t.Fatalf("expected To capped at 3, got %d", p.opts.To)
		}
	})

	t.Run("out_of_range", func(t *testing.T) {
		p, _ := newTestPlayer(t, 8)
		cases := []PlaybackOptions{
			{From: -1, To: 3},
			{From: 0, To: 8},
			{From: 9, To: LastFrame},
		}
		for _, opts := range cases {
			if err := p.Play(opts); !errors.Is(err, ErrFrameRange) {
				t.Fatalf("Play(%+v): expected ErrFrameRange, got %v", opts, err)
			}
			if p.Playing() {
				t.Fatalf("a rejected Play must not leave a schedule armed")
			}
		}
	})
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero_tile_width", Config{SheetPath: "x.png", TileHeight: 8}, ErrInvalidGeometry},
		{"negative_tile_height", Config{SheetPath: "x.png", TileWidth: 8, TileHeight: -1}, ErrInvalidGeometry},
		{"bad_direction", Config{SheetPath: "x.png", TileWidth: 8, TileHeight: 8, Direction: Direction(9)}, ErrInvalidDirection},
		{"no_sheet", Config{TileWidth: 8, TileHeight: 8}, ErrResourceLoad},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.cfg); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}

func TestPrepareIsIdempotent(t *testing.T) {
	p, _ := newTestPlayer(t, 4)
	before := p.table

	if err := p.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if err := p.Prepare(context.Background()); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if len(p.table) != len(before) || &p.table[0] != &before[0] {
		t.Fatalf("prepared player must not rebuild its frame table")
	}
}

func TestPlayClip(t *testing.T) {
	p, drawn := newTestPlayer(t, 8)

	lib := NewLibrary()
	lib.Register("walk", PlaybackOptions{From: 4, To: 6, FPS: 60})

	if err := p.PlayClip(lib, "walk"); err != nil {
		t.Fatalf("PlayClip: %v", err)
	}
	tick(p, 1)
	if len(*drawn) != 1 || (*drawn)[0] != 4 {
		t.Fatalf("expected first draw of frame 4, got %v", *drawn)
	}

	if err := p.PlayClip(lib, "missing"); err == nil {
		t.Fatalf("expected error for unknown clip")
	}
}
