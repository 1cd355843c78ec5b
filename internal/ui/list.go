package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/playall/internal/models"
)

var (
	_ list.Item = resultItem{}
)

// resultItem wraps a resolved [models.Result] to implement [list.Item].
type resultItem struct {
	result models.Result
}

func (i resultItem) FilterValue() string { return i.result.Input }
func (i resultItem) Title() string       { return i.result.Input }
func (i resultItem) Description() string {
	return i.result.PlaylistURL + " • " + string(i.result.Method)
}
