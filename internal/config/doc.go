// Package config reads the application's settings from the environment and
// prepares the files it needs on start-up.
//
// All settings have defaults, so running with an empty environment works:
//
//	RSVP_PARAMETERS      parameters document (default parameters/parameters.json)
//	RSVP_CREATE_MISSING  write built-in defaults if the document is missing (true)
//	RSVP_REPAIR_INVALID  replace invalid values with their defaults on load (false)
//	RSVP_LOG_FILE        log destination (rsvp.log)
//	RSVP_LOG_LEVEL       debug, info, warn or error (info)
//	RSVP_LOG_FORMAT      text or json (text)
//
// Paths may reference other variables with $VAR or ${VAR}:
//
//	RSVP_PARAMETERS='${HOME}/rsvp/parameters.json'
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := config.NewManager(cfg)
//	if _, err := manager.EnsureParameters(); err != nil {
//		log.Fatal(err)
//	}
package config
