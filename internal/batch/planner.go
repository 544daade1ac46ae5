// Package batch groups ordered text fragments into model-sized chunks.
package batch

import "strings"

// Caps chosen to keep a batch comfortably inside one small-model call.
const (
	MaxCharsPerBatch     = 200
	MaxFragmentsPerBatch = 5
)

// MakeBatches merges fragments, in order, into newline-joined batches. A new
// batch starts when appending the next fragment would exceed MaxCharsPerBatch
// or the current batch already holds MaxFragmentsPerBatch fragments. A single
// fragment longer than the cap is never split; it forms its own batch.
//
// Concatenating all batches (ignoring separators) reproduces the input
// exactly: nothing is dropped, duplicated, or reordered.
func MakeBatches(fragments []string) []string {
	var batches []string
	var current strings.Builder
	count := 0

	for _, fragment := range fragments {
		startNew := current.Len() > 0 &&
			(current.Len()+len(fragment) > MaxCharsPerBatch || count >= MaxFragmentsPerBatch)

		if startNew {
			batches = append(batches, strings.TrimSpace(current.String()))
			current.Reset()
			count = 0
		}

		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(fragment)
		count++
	}

	if current.Len() > 0 {
		batches = append(batches, strings.TrimSpace(current.String()))
	}

	return batches
}
