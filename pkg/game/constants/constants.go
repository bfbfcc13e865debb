package constants

const (
	// PlayerStartingX is the x coordinate of a new player
	PlayerStartingX float64 = 100.0
	// PlayerStartingY is the y coordinate of a new player
	PlayerStartingY float64 = 100.0
	// PlayerSpeed is the distance a player covers per step
	PlayerSpeed float64 = 3.0
	// PlayerStartingMap is the map a new player spawns on
	PlayerStartingMap string = "start"

	// MaxSanity is the sanity of a fresh player and the upper clamp
	MaxSanity int = 100
	// MinSanity is the lower clamp; a player at MinSanity has lost the game
	MinSanity int = 0
)
