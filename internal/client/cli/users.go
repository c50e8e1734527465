package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/campusevents/internal/client/models"
)

// Profile fetches the full profile from the server, unlike whoami which
// shows the cached session snapshot.
func (a *App) Profile(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}
	u, err := a.users.Profile(ctx)
	if err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn(fmt.Sprintf("%s <%s> role=%s", u.FullName(), u.Email, u.Role))
	if u.Department != "" {
		printlnFn("Department:", u.Department)
	}
	if u.StudentID != "" {
		printlnFn("Student ID:", u.StudentID)
	}
	if u.Phone != "" {
		printlnFn("Phone:", u.Phone)
	}
	return nil
}

// Dashboard prints the platform counters. Sections the current role cannot
// read are reported but do not block the rest.
func (a *App) Dashboard(ctx context.Context) error {
	if !a.session.HasRole(models.RoleAdmin, models.RoleOrganizer) {
		printlnFn("Requires the organizer or admin role")
		return nil
	}

	ov := a.analytics.Overview(ctx)
	printlnFn(fmt.Sprintf("Events: %d  Users: %d  Registrations: %d  Categories: %d",
		ov.Events, ov.Users, ov.Registrations, ov.Categories))
	for section, err := range ov.Errors {
		printlnFn(fmt.Sprintf("section %s unavailable: %v", section, err))
	}
	return nil
}
