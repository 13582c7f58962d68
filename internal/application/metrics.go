package application

import "expvar"

// stats is published under "members" at /api/debug/vars.
var stats = expvar.NewMap("members")

const (
	statRegistered   = "registered"
	statConfirmed    = "confirmed"
	statNotifyFailed = "notify_failed"
	statFollows      = "follows"
	statBanDates     = "ban_dates_created"
)
