package domain

// Envelope markers wrapping every encoded body.
const (
	StartMarker = "LPS"
	EndMarker   = "LP"
)

// MinLength is the shortest accepted input once delimiters are removed.
const MinLength = len(StartMarker) + len(EndMarker)
