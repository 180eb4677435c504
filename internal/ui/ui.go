// Package ui provides the main entry point for the UI.
package ui

import (
	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/ui/input"
	"github.com/palemoky/decawise/internal/ui/model"
	"github.com/palemoky/decawise/internal/ui/view"
)

// NewApp creates the game model with the views and key handling wired in.
func NewApp(e *engine.Engine, opts ...model.AppOption) *model.App {
	app := model.NewApp(e, opts...)
	app.SetViewRenderer(view.CreateViewRenderer())
	app.SetKeyHandler(input.HandleKeyPress)
	return app
}
