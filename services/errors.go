package services

import "errors"

// Fehler-Taxonomie der Services; Handler mappen sie via errors.Is auf
// HTTP-Statuscodes (NotFound kommt als store.ErrNotFound durch).
var (
	// ErrInvalidTransition: der Status-Übergang ist laut Transitionstabelle
	// nicht erlaubt (z.B. publish ohne vorheriges verified).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidDecision: die Verifikations-Entscheidung ist weder
	// "verified" noch "hoax".
	ErrInvalidDecision = errors.New("decision must be verified or hoax")

	// ErrInvalidStatus: unbekannter Status-Filter in einer Listen-Abfrage.
	ErrInvalidStatus = errors.New("unknown article status")

	// ErrMissingRegion: der Pflichtparameter region fehlt.
	ErrMissingRegion = errors.New("region parameter is mandatory")

	// ErrUpstreamUnavailable: keine der externen Quellen war erreichbar
	// bzw. lieferte eine brauchbare Antwort.
	ErrUpstreamUnavailable = errors.New("upstream source unavailable")
)
