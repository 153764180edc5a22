package frameplayer

// CycleKind distinguishes the two completion notifications a playback can
// emit.
type CycleKind int

const (
	// CycleLoop is emitted every time the cursor wraps from the end frame
	// back to the start frame.
	CycleLoop CycleKind = iota
	// CycleSingleFrame is emitted once when a playback with from == to has
	// rendered its only frame. The schedule halts immediately after.
	CycleSingleFrame
)

// CycleEvent is delivered to PlaybackOptions.OnCycleComplete.
//
// For CycleLoop events Player is the emitting player and LoopsCompleted is
// the number of full traversals finished so far (starting at 1). For
// CycleSingleFrame events Player is nil and LoopsCompleted is 0; a degenerate
// single-frame playback never counts loops.
type CycleEvent struct {
	Kind           CycleKind
	Player         *Player
	LoopsCompleted int
	Options        PlaybackOptions
}
