// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for catalog browsing:
//  1. [SearchView] : Enter a query, submitted on enter (never per keystroke)
//  2. [ResultsView] : Four result sections (artists, albums, tracks, shows) navigable as lists
//  3. [DetailView] : Full detail for the selected entity, with preview playback and library toggles
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Search cycles run through the orchestrator, so results from a superseded
// query never reach the screen; sub-queries that fail render as empty
// sections. Library toggles apply optimistically and roll back with a visible
// failure line when the mutation fails.
//
// Keyboard navigation uses vim-style bindings (j/k, tab, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
