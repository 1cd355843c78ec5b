package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/playall/internal/models"
	"github.com/desertthunder/playall/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgResolveComplete
	MsgBrowserOpened
)

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// resolveCompleteMsg is the constructor for [MsgResolveComplete]
func resolveCompleteMsg(result models.Result) Msg {
	return Msg{kind: MsgResolveComplete, data: result}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(url string, err error) Msg {
	return Msg{
		kind: MsgBrowserOpened,
		data: struct {
			url string
			err error
		}{url, err},
	}
}
