package config

const (
	WindowWidth  = 1280
	WindowHeight = 720
	WindowTitle  = "Etherwall"

	// Output tap
	TapRingSize     = 8192
	LevelWindow     = 2048
	SmoothingFactor = 0.6

	// Keyboard control steps
	SpeedStep    = 0.1
	OrbCountStep = 1
	OpacityStep  = 0.05
	VolumeStep   = 0.05

	// Settings bounds
	MinAnimationSpeed = 0.1
	MaxAnimationSpeed = 4.0
	MaxOrbCount       = 60

	// Audio defaults
	DefaultVolume = 0.55
)
