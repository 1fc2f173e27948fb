package view

import (
	"fmt"
	"image"
	"strings"
)

// Container is a region a renderer can mount a tree into.
type Container struct {
	ID      string
	Classes []string
	Origin  image.Point // top-left corner on the screen
}

func (c *Container) matches(locator string) bool {
	switch {
	case locator == "*":
		return true
	case strings.HasPrefix(locator, "#"):
		return c.ID == locator[1:]
	case strings.HasPrefix(locator, "."):
		for _, cl := range c.Classes {
			if cl == locator[1:] {
				return true
			}
		}
		return false
	default:
		return c.ID == locator
	}
}

// MountResolutionError reports a locator that did not match exactly one
// container.
type MountResolutionError struct {
	Locator string
	Matches int
}

func (e *MountResolutionError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("mount: no container matches %q", e.Locator)
	}
	return fmt.Sprintf("mount: %d containers match %q, want exactly one", e.Matches, e.Locator)
}

// Document is the set of containers available to mount boards into.
type Document struct {
	containers []*Container
}

// NewDocument creates a document holding the given containers.
func NewDocument(containers ...*Container) *Document {
	return &Document{containers: containers}
}

// Add registers a container.
func (d *Document) Add(c *Container) {
	d.containers = append(d.containers, c)
}

// QueryAll returns the containers matching locator: "#id", ".class", "*",
// or a bare id.
func (d *Document) QueryAll(locator string) []*Container {
	var out []*Container
	for _, c := range d.containers {
		if c.matches(locator) {
			out = append(out, c)
		}
	}
	return out
}

// Resolve returns the single container matching locator.
func (d *Document) Resolve(locator string) (*Container, error) {
	matches := d.QueryAll(locator)
	if len(matches) != 1 {
		return nil, &MountResolutionError{Locator: locator, Matches: len(matches)}
	}
	return matches[0], nil
}
