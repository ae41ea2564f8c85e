package core

// Color is the role of a screen cell. The platform maps each role to a
// terminal colour.
type Color uint8

const (
	ColorDefault  Color = iota
	ColorWall           // Track border
	ColorFinish         // Finish line
	ColorObstacle       // Obstacles
	ColorCar            // The player's car
	ColorHUD            // Status line and messages
)
