package handlers

const (
	// Pattern defaults and limits
	defaultNotesPerString = 3
	maxNotesPerString     = 4
	maxSeedFret           = 24

	// Progression limits
	maxProgressionLength = 64

	midiContentType = "audio/midi"
)
