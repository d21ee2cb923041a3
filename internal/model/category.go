// Package model defines the core domain models used throughout the application.
package model

import "time"

// Category represents a node in the destination marketplace's category tree.
type Category struct {
	CreatedAt time.Time
	Name      string
	Path      string
	ID        int64
	ParentID  int64
	Level     int
	IsLeaf    bool
}

// IsRoot reports whether the category sits at the top of the tree.
func (c *Category) IsRoot() bool {
	return c.ParentID == 0
}
