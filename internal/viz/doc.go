// Package viz renders solved fields in the terminal and as animations.
//
//   - [Render]: one time slice as an asciigraph line plot (1-D) or a shaded
//     heatmap (2-D, and the middle z layer in 3-D), labelled t = n·dt
//   - [Viewer]: Bubble Tea frame scrubber over a stored run
//   - [SaveGIF]: every frame of a run as an animated GIF
//   - [NewInteractiveApp]: preset menu that solves and opens the viewer
//
// # Key Bindings
//
//	Space - Play/Pause
//	←/→   - Previous/next frame
//	[/]   - Jump ten frames
//	Home  - First frame, End - last frame
//	T     - Cycle color themes
//	G     - Save the run as GIF
//	?     - Show help overlay
package viz
