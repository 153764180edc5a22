package frameplayer

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/anrananran/frame-player/render"
)

// State is the playback lifecycle of a Player. A player starts Idle, passes
// through Loading while its sheet resolves, sits Armed once geometry and
// surface exist, and is Ticking while a schedule is active. Completed is
// terminal for a single Play call; the next Play starts the cycle over.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateArmed
	StateTicking
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateArmed:
		return "armed"
	case StateTicking:
		return "ticking"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// LastFrame selects the last valid frame index when used as
// PlaybackOptions.To.
const LastFrame = -1

// PlaybackOptions configures a single Play call. The zero value plays frame 0
// only; use DefaultOptions for the conventional full-sheet forward loop.
type PlaybackOptions struct {
	From int // start frame index
	To   int // end frame index, inclusive; LastFrame selects the last valid index
	Loop int // full traversals before halting; 0 repeats forever
	FPS  int // scheduler steps per second; <= 0 defaults to 30
	// OnCycleComplete receives a CycleLoop event at every wrap and a single
	// CycleSingleFrame event when From == To.
	OnCycleComplete func(CycleEvent)
}

// DefaultOptions returns options that loop the whole sheet forward at 30 FPS
// until a later Play replaces the schedule.
func DefaultOptions() PlaybackOptions {
	return PlaybackOptions{To: LastFrame, FPS: 30}
}

// Config describes a player's sheet and output surface. All fields are fixed
// at construction.
type Config struct {
	// Surface is the locator the output surface is registered under in the
	// render surface registry. Empty leaves the surface unregistered; it is
	// still reachable through (*Player).Surface.
	Surface string
	// Sheet is a pre-resolved sheet image. When nil, SheetPath is loaded
	// through render.LoadImage during Prepare.
	Sheet     *ebiten.Image
	SheetPath string

	TileWidth  int
	TileHeight int
	// FrameCount is the caller-declared number of usable frames. 0 means
	// "as many as the sheet holds".
	FrameCount int
	Direction  Direction
}

// schedule is the player's tick source. Play replaces the whole value, so a
// stale schedule can never fire again.
type schedule struct {
	interval  int // host ticks per scheduler step
	countdown int
}

// Player animates one sprite sheet onto one surface. It is driven by the host
// game loop: call Tick once per update. A Player is not safe for concurrent
// use; the design assumes the single-goroutine update loop of the host.
type Player struct {
	cfg     Config
	sheet   *ebiten.Image
	surface *ebiten.Image
	table   []image.Point
	tps     int

	state    State
	opts     PlaybackOptions
	cursor   int
	loops    int
	paused   bool
	schedule *schedule

	// draw renders the frame at the given sheet offset onto the surface.
	// Installed by Prepare; replaceable in tests.
	draw func(src image.Point)
}

// New validates cfg and returns an idle player. The sheet is not resolved and
// no surface exists until Prepare or the first Play.
func New(cfg Config) (*Player, error) {
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile %dx%d", ErrInvalidGeometry, cfg.TileWidth, cfg.TileHeight)
	}
	if cfg.Direction != Horizontal && cfg.Direction != Vertical {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, int(cfg.Direction))
	}
	if cfg.Sheet == nil && cfg.SheetPath == "" {
		return nil, fmt.Errorf("%w: no sheet configured", ErrResourceLoad)
	}
	return &Player{
		cfg:   cfg,
		sheet: cfg.Sheet,
		tps:   ebiten.TPS(),
	}, nil
}

// Prepare resolves the sheet resource and builds the frame table. It is
// idempotent: once a player is prepared, later calls return immediately. On
// failure the player stays Idle and the error is returned; there is no retry
// beyond calling Prepare (or Play) again.
func (p *Player) Prepare(ctx context.Context) error {
	if p.prepared() {
		return nil
	}
	p.state = StateLoading

	if p.sheet == nil {
		if err := ctx.Err(); err != nil {
			p.state = StateIdle
			return fmt.Errorf("%w: %s: %v", ErrResourceLoad, p.cfg.SheetPath, err)
		}
		img, err := render.LoadImage(p.cfg.SheetPath)
		if err != nil {
			p.state = StateIdle
			log.Printf("frameplayer: load sheet %s: %v", p.cfg.SheetPath, err)
			return fmt.Errorf("%w: %s: %v", ErrResourceLoad, p.cfg.SheetPath, err)
		}
		p.sheet = img
	}

	if len(p.table) == 0 {
		bounds := p.sheet.Bounds()
		table, err := buildFrameTable(bounds.Dx(), bounds.Dy(), p.cfg.TileWidth, p.cfg.TileHeight, p.cfg.Direction)
		if err != nil {
			p.state = StateIdle
			return err
		}
		p.table = table
		if p.cfg.FrameCount > len(p.table) {
			log.Printf("frameplayer: frame count %d exceeds sheet capacity %d", p.cfg.FrameCount, len(p.table))
		}
	}

	if p.surface == nil {
		p.surface = ebiten.NewImage(p.cfg.TileWidth, p.cfg.TileHeight)
		if p.cfg.Surface != "" {
			render.RegisterSurface(p.cfg.Surface, p.surface)
		}
	}
	if p.draw == nil {
		p.draw = p.blit
	}

	p.state = StateArmed
	return nil
}

func (p *Player) prepared() bool {
	return len(p.table) > 0 && p.draw != nil
}

// Play starts (or restarts) playback. Any schedule from an earlier Play is
// cancelled before anything else, so exactly one tick source exists per
// player. Setup errors abort before the schedule is armed.
func (p *Player) Play(opts PlaybackOptions) error {
	p.schedule = nil

	if !p.prepared() {
		if err := p.Prepare(context.Background()); err != nil {
			return err
		}
	}

	opts, err := p.normalize(opts)
	if err != nil {
		p.state = StateArmed
		return err
	}

	p.opts = opts
	p.cursor = opts.From
	p.loops = 0
	p.paused = false
	p.schedule = &schedule{
		interval:  p.ticksPerStep(opts.FPS),
		countdown: p.ticksPerStep(opts.FPS),
	}
	p.state = StateTicking
	return nil
}

// PlayClip plays a named clip from a library.
func (p *Player) PlayClip(lib *Library, name string) error {
	opts, ok := lib.Get(name)
	if !ok {
		return fmt.Errorf("frameplayer: unknown clip %q", name)
	}
	return p.Play(opts)
}

// normalize applies option defaults and validates frame indices against the
// frame table. Indices past the sheet's capacity are rejected rather than
// clamped; the render step never sees an out-of-table index.
func (p *Player) normalize(opts PlaybackOptions) (PlaybackOptions, error) {
	limit := len(p.table)
	if p.cfg.FrameCount > 0 && p.cfg.FrameCount < limit {
		limit = p.cfg.FrameCount
	}
	if opts.To == LastFrame {
		opts.To = limit - 1
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Loop < 0 {
		opts.Loop = 0
	}
	if opts.From < 0 || opts.From >= limit {
		return opts, fmt.Errorf("%w: from %d, frames %d", ErrFrameRange, opts.From, limit)
	}
	if opts.To < 0 || opts.To >= limit {
		return opts, fmt.Errorf("%w: to %d, frames %d", ErrFrameRange, opts.To, limit)
	}
	return opts, nil
}

func (p *Player) ticksPerStep(fps int) int {
	return int(math.Max(1, math.Round(float64(p.tps)/float64(fps))))
}

// Tick advances the schedule by one host update. Call once per game update
// (typically 60 times per second). A paused or unscheduled player does
// nothing.
func (p *Player) Tick() {
	s := p.schedule
	if s == nil || p.paused {
		return
	}
	s.countdown--
	if s.countdown > 0 {
		return
	}
	s.countdown = s.interval
	p.step()
}

// step runs one scheduler step: the finite-loop exit check, the render, the
// cursor advance, and the wrap bookkeeping.
func (p *Player) step() {
	opts := p.opts

	if opts.Loop > 0 && p.loops >= opts.Loop {
		p.halt()
		return
	}

	p.draw(p.table[p.cursor])

	switch {
	case opts.From == opts.To:
		// Degenerate single-frame playback: render once, notify once, halt.
		// Never counts as a loop.
		if opts.OnCycleComplete != nil {
			opts.OnCycleComplete(CycleEvent{Kind: CycleSingleFrame, Options: opts})
		}
		p.halt()
		return
	case opts.From < opts.To:
		p.cursor++
	default:
		p.cursor--
	}

	wrapped := (opts.From < opts.To && p.cursor > opts.To) ||
		(opts.From > opts.To && p.cursor < opts.To)
	if wrapped {
		p.cursor = opts.From
		p.loops++
		if opts.OnCycleComplete != nil {
			opts.OnCycleComplete(CycleEvent{
				Kind:           CycleLoop,
				Player:         p,
				LoopsCompleted: p.loops,
				Options:        opts,
			})
		}
	}
}

func (p *Player) halt() {
	p.schedule = nil
	p.state = StateCompleted
}

// blit clears the surface and draws the tile at src scaled to the surface's
// output dimensions.
func (p *Player) blit(src image.Point) {
	p.surface.Clear()
	r := image.Rect(src.X, src.Y, src.X+p.cfg.TileWidth, src.Y+p.cfg.TileHeight)
	sub := p.sheet.SubImage(r).(*ebiten.Image)

	var op ebiten.DrawImageOptions
	sw, sh := p.surface.Bounds().Dx(), p.surface.Bounds().Dy()
	op.GeoM.Scale(float64(sw)/float64(p.cfg.TileWidth), float64(sh)/float64(p.cfg.TileHeight))
	op.Filter = ebiten.FilterNearest
	p.surface.DrawImage(sub, &op)
}

// SetPaused freezes or resumes the schedule without losing cursor state.
func (p *Player) SetPaused(paused bool) { p.paused = paused }

// Playing reports whether a schedule is active.
func (p *Player) Playing() bool { return p.schedule != nil }

// State returns the playback lifecycle state.
func (p *Player) State() State { return p.state }

// Surface returns the player's output surface. Nil until Prepare succeeds.
func (p *Player) Surface() *ebiten.Image { return p.surface }

// Cursor returns the current frame index.
func (p *Player) Cursor() int { return p.cursor }

// LoopsCompleted returns the number of full traversals finished by the
// current playback.
func (p *Player) LoopsCompleted() int { return p.loops }

// FrameCount returns the number of frames in the built table, or 0 before
// Prepare.
func (p *Player) FrameCount() int { return len(p.table) }

// Size returns the per-frame pixel size.
func (p *Player) Size() (int, int) { return p.cfg.TileWidth, p.cfg.TileHeight }
