// Package viz renders orbits and grids in the terminal.
//
//   - [Canvas]: braille pixel canvas used for phase portraits
//   - [Heatmap]: shaded view of a discretized grid
//   - [AxisSeries]: asciigraph plot of the x and y coordinates over time
//   - [Browser]: Bubble Tea model for paging through a dataset
//
// # Key Bindings (Browser)
//
//	←/→, h/l - Previous/next entry
//	g/G      - First/last entry
//	Tab      - Switch between grid and orbit views
//	q        - Quit
package viz
