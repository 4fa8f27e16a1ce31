// Package tui is a small retained-mode UI framework for character-grid
// terminals.
//
// Widgets live in a Store as bundles of typed attributes (Text, Position,
// Size, Color, Clickable, Container, ...). An App runs the frame pipeline
// over a Surface: it polls input, dispatches clicks to the widget under the
// pointer, re-measures labels whose text changed, stacks container children
// and grows containers around them, then paints every text widget.
//
//	store := tui.NewStore()
//	hello := store.NewLabel("Hello world")
//	quit := store.NewButton("Quit", tui.WithColor(tui.Red, tui.White))
//	store.NewVBox(tui.WithPosition(2, 1), tui.WithPadding(1), tui.WithChildren(hello, quit))
//
//	app, _ := tui.NewApp(surface, tui.WithStore(store))
//	app.OnClick(quit, func(tui.ClickEvent) { app.Stop() })
//	err := app.Run(ctx)
package tui
