// Package editor provides a Bubble Tea component for one rich-text field
// backed by the richtext engine.
//
// The package is responsible for key handling, grapheme-aware soft-wrapped
// rendering of styles, selection and compositions, and host integration
// hooks (clipboard, change events and block-level signals).
package editor
