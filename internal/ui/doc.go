// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI is a single form for turning channel references into uploads playlist URLs:
//  1. [InputView] : Type a channel URL, @handle, or channel ID and press enter
//  2. [ResolvingView] : A spinner with the latest progress message while the engine works
//  3. [HistoryView] : Browse playlists generated during this session
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the ResolveEngine, providing non-blocking status reporting.
//
// A failed resolution shows the error text verbatim and clears any previous result.
// ctrl+o opens the current playlist in the browser and ctrl+r resets the form.
package ui
