// Package terminal wraps a tcell screen behind a flat cell-buffer interface.
//
// Callers compose a frame into a []Cell (row-major) and hand it to Flush; input arrives as
// backend-neutral Event values from PollEvent. Colours are 24-bit RGB and are downsampled to the
// xterm-256 palette when the terminal lacks true colour.
package terminal
