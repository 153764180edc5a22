// Package frameplayer plays sprite-sheet animations. It slices a single
// bitmap into equally sized tiles, then renders one tile per scheduler step
// onto an owned output surface, supporting forward and reverse playback,
// finite or infinite looping, and row-major or column-major sheet layouts.
//
// A Player is driven by the host game loop: call Tick once per update.
package frameplayer
