// Package ui draws dispatcher frames with Bubble Tea.
//
// Each frame is its own short Bubble Tea program: it enters the alternate
// screen, renders the frame, waits for one key and exits, restoring the
// terminal. Between frames the terminal belongs to whatever the selected
// verb launches (fzf, an editor, a shell), so the Surface never competes
// with a child process for input.
//
// Flash and Pause follow the same pattern with their own tiny models: a
// timed fill of the screen for unusable keys, and a prompt that waits for
// any key after a command finishes.
package ui
