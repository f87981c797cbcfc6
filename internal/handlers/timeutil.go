package handlers

import "time"

// Display location for timestamps; set from app.timezone at startup.
var displayLoc = time.Local

// SetLocation changes the zone used by the admin pages.
func SetLocation(loc *time.Location) {
	if loc != nil {
		displayLoc = loc
	}
}

// ISO date string, e.g. "2006-01-02". Birth dates are stored as UTC midnight
// and are printed without conversion.
func fmtISODate(d time.Time) string {
	return d.UTC().Format("2006-01-02")
}

// e.g. "Mon, 02 Jan 2006 15:04"
func fmtDateTime(t time.Time) string {
	return t.In(displayLoc).Format("Mon, 02 Jan 2006 15:04")
}
