// Package timezone keeps every timestamp the service produces in one location.
//
// Occupation windows, waiting list dates and response metadata are all read and written through it:
//
//	now := timezone.Now()                               // default occupation start
//	start, err := timezone.ParseFlexible("2024-05-01")  // start_date filter, midnight in the app location
//	label := timezone.Format(occupation.StartedAt, time.RFC3339)
//
// The location comes from APP_TIMEZONE and must be an IANA name such as "UTC" or "Asia/Jakarta".
// An unknown name falls back to UTC with an error log.
package timezone
