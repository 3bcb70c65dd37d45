// Package viz renders heat fields in the terminal.
//
//   - [PlotLayers]: temperature profiles of selected layers (asciigraph)
//   - [PlotSeries]: error and convergence curves
//   - [Canvas]: braille canvas for the rod profile
//   - [Player]: Bubble Tea model that replays a field layer by layer
//
// # Player keys
//
//	Space, p - Play/Pause
//	←/→, h/l - Step one layer
//	+/-      - Playback speed
//	g/G      - First/last layer
//	q        - Quit
package viz
