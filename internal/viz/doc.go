// Package viz renders circuit timelines in the terminal and as GIFs.
//
//   - [Canvas]: braille pixel canvas with a pen per cell
//   - [Camera] and [DrawBloch]: wireframe Bloch sphere projection
//   - [BlochScene], [HistogramScene], [PairScene]: per-view frame drawing
//   - [Recorder]: GIF capture of canvases with text labels
//   - [Player]: Bubble Tea playback of a combined timeline
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Restart
//	[ ]   - Step one frame back/forward
//	G     - Toggle GIF recording
//	T     - Cycle color themes
//	?     - Show help overlay
package viz
