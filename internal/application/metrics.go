package application

import "expvar"

// Counters are published under /debug/vars when the debug module is enabled.
var (
	statRegistrations  = expvar.NewInt("users_registered")
	statLoginsOK       = expvar.NewInt("logins_succeeded")
	statLoginsFailed   = expvar.NewInt("logins_failed")
	statResetRequested = expvar.NewInt("password_resets_requested")
)
