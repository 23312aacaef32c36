package config

import "os"

func envFlag(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	return v != "" && v != "0"
}

func Development() bool {
	return envFlag("DEVELOPMENT")
}

// Debug turns on debug level logging.
func Debug() bool {
	return envFlag("DEBUG") || Development()
}

// ShowMines makes new boards place their mines up front and the render
// snapshot display them.
func ShowMines() bool {
	return envFlag("SHOW_MINES")
}
