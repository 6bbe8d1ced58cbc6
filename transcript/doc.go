// Package transcript converts speech-to-text output into the unified
// document format. Timed segments are regrouped at sentence boundaries
// into chunks sized for embedding, so a chunk never ends mid-thought
// just because the recognizer paused there.
package transcript
