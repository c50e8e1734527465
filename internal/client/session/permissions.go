package session

// rolePermissions is the default permission set per role, used when the user
// record carries no explicit permissions.
var rolePermissions = map[string][]string{
	"admin": {
		"manage_users",
		"manage_events",
		"manage_categories",
		"view_analytics",
		"system_config",
		"manage_notifications",
	},
	"organizer": {
		"create_events",
		"manage_own_events",
		"view_registrations",
		"send_notifications",
		"view_event_analytics",
	},
	"participant": {
		"view_events",
		"register_events",
		"manage_profile",
		"view_own_registrations",
	},
}
