package cli

import (
	"context"
	"fmt"
)

// Notifications fetches and prints the inbox, unread first marker included.
func (a *App) Notifications(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}
	if err := a.notifications.Fetch(ctx, 1, 20); err != nil {
		printlnFn("error:", err)
		return err
	}

	st := a.notifications.State()
	if len(st.Items) == 0 {
		printlnFn("No notifications")
		return nil
	}
	printlnFn(fmt.Sprintf("%d unread", st.UnreadCount))
	for _, n := range st.Items {
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		printlnFn(fmt.Sprintf("%s %s  [%s] %s: %s", marker, n.ID, n.Type, n.Title, n.Message))
	}
	return nil
}

// Read marks one notification as read.
func (a *App) Read(ctx context.Context, id string) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}
	if err := a.notifications.MarkAsRead(ctx, id); err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn("Marked as read")
	return nil
}

// ReadAll marks every notification as read.
func (a *App) ReadAll(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first")
		return nil
	}
	if err := a.notifications.MarkAllAsRead(ctx); err != nil {
		printlnFn("error:", err)
		return err
	}
	printlnFn("All notifications marked as read")
	return nil
}
