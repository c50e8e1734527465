package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
	"github.com/dmitrijs2005/campusevents/internal/client/services"
)

// Events lists published events, first page.
func (a *App) Events(ctx context.Context) error {
	filter := services.EventFilter{Page: 1, Limit: 20, Status: models.EventPublished}
	events, pg, err := a.events.List(ctx, filter)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	if len(events) == 0 {
		printlnFn("No events found")
		return nil
	}
	for _, e := range events {
		printlnFn(fmt.Sprintf("%s  %-30s  %s  %d/%d registered",
			e.ID, e.Title, e.StartDate.Format("2006-01-02 15:04"), e.Registered, e.Capacity))
	}
	if pg != nil && pg.TotalPages > 1 {
		printlnFn(fmt.Sprintf("Page %d of %d (%d events total)", pg.CurrentPage, pg.TotalPages, pg.TotalItems))
	}
	return nil
}

// Event shows one event in detail.
func (a *App) Event(ctx context.Context, id string) error {
	e, err := a.events.Get(ctx, id)
	if err != nil {
		printlnFn("error:", err)
		return err
	}

	printlnFn(e.Title)
	if e.Category != nil {
		printlnFn("Category:", e.Category.Name)
	}
	printlnFn("When:", e.StartDate.Format("2006-01-02 15:04"), "-", e.EndDate.Format("2006-01-02 15:04"))
	printlnFn("Where:", e.Location)
	printlnFn(fmt.Sprintf("Capacity: %d/%d", e.Registered, e.Capacity))
	if e.Organizer != nil {
		printlnFn("Organizer:", e.Organizer.FullName())
	}
	printlnFn(e.Description)
	return nil
}

// RegisterEvent registers the current user for an event.
func (a *App) RegisterEvent(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}
	reg, err := a.events.Register(ctx, id)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn("Registered, status:", reg.Status)
	return nil
}

// MyRegistrations lists the current user's registrations.
func (a *App) MyRegistrations(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}
	regs, err := a.events.MyRegistrations(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	if len(regs) == 0 {
		printlnFn("No registrations")
		return nil
	}
	for _, r := range regs {
		title := "(unknown event)"
		if r.Event != nil {
			title = r.Event.Title
		}
		printlnFn(fmt.Sprintf("%s  %-30s  %s", r.ID, title, r.Status))
	}
	return nil
}

// Health probes the backend once and reports the result.
func (a *App) Health(ctx context.Context) error {
	if err := services.Ping(ctx, a.api); err != nil {
		printlnFn("Backend unreachable:", err)
		return err
	}
	printlnFn("Backend is up")
	return nil
}
