package embedded

import (
	_ "embed"
)

// Embedded catalog data
//
//go:embed data/modes.yml
var ModesYAML []byte

//go:embed data/voicings.yml
var VoicingsYAML []byte

//go:embed data/progressions.yml
var ProgressionsYAML []byte
