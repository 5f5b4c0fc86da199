// Package params is the parameter store of the RSVP Keyboard console.
//
// A parameters document is a JSON object mapping each parameter name to a
// declaration:
//
//	{
//	  "time_flash": {
//	    "value": 0.25,
//	    "type": "float",
//	    "default": 0.25,
//	    "range": [0.05, 2],
//	    "label": "Flash Time",
//	    "help": "Seconds each symbol stays on screen.",
//	    "section": "Presentation"
//	  },
//	  "acq_mode": {
//	    "value": "EEG",
//	    "type": "choice",
//	    "default": "EEG",
//	    "choices": ["EEG", "EEG/DSI-24", "EEG/LSL"]
//	  }
//	}
//
// value, type and default are required. Members the package does not know
// are kept and written back in place, so newer files survive a round trip
// through an older console.
//
// Loading happens in two passes: the structure of the whole document is
// checked first, then each declaration is decoded and validated. Either
// pass failing leaves the Store empty. After loading, every mutation goes
// through Set or Reset and is validated; a rejected value never reaches the
// store.
//
// Example usage:
//
//	store, err := params.LoadFile("parameters.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if _, err := store.Set("time_flash", 0.3); err != nil {
//		var invalid *params.InvalidValueError
//		errors.As(err, &invalid)
//	}
//	err = store.Save("parameters.json")
package params
