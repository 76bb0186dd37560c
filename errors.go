package confenv

import "errors"

var (
	// ErrEmptyPrefix is returned when the prefix is blank; a prefix is required to compute environment keys.
	ErrEmptyPrefix = errors.New("prefix must be a non-empty string")
	// ErrKeyCollision is returned when two option names map to the same environment key in one call.
	ErrKeyCollision = errors.New("environment key collision")
	// ErrNotLoaded is returned when configuration is read before the first successful Load.
	ErrNotLoaded = errors.New("configuration not loaded")
	// ErrUnknownOption is returned when the requested option name was never resolved.
	ErrUnknownOption = errors.New("unknown configuration option")
)
