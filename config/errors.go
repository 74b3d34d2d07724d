package config

import "github.com/ayoisaiah/blox/internal/apperr"

var errInitFailed = &apperr.Error{
	Message: "Unable to initialise blox settings from the configuration file",
}
