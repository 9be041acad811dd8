// Package components defines ECS components for footprint entities.
package components

// Position represents an entity's world position.
type Position struct {
	X, Y float64
}

// Rotation holds the facing angle in radians.
type Rotation struct {
	Heading float64
}

// Imprint is the mark a foot leaves on the ground.
// Age counts ticks since the mark was made.
type Imprint struct {
	Size float64
	Age  int
}
