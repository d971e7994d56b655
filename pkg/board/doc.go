// Package board keeps the per-date load state of the displayed month and
// publishes changes as Bubble Tea messages.
package board
