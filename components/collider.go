package components

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLayer is returned when a layer name is not recognized.
var ErrUnknownLayer = errors.New("unknown layer")

// Layer identifies a collision layer.
type Layer uint8

const (
	LayerDefault Layer = iota
	LayerGround
	LayerWall
	LayerTrigger
)

var layerNames = [...]string{"default", "ground", "wall", "trigger"}

// String returns the layer name.
func (l Layer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return fmt.Sprintf("layer(%d)", uint8(l))
}

// ParseLayer resolves a layer name.
func ParseLayer(name string) (Layer, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range layerNames {
		if s == n {
			return Layer(i), nil
		}
	}
	return 0, fmt.Errorf("parsing layer %q: %w", name, ErrUnknownLayer)
}

// LayerMask is a bit set of layers.
type LayerMask uint32

// MaskAll matches every layer.
const MaskAll LayerMask = ^LayerMask(0)

// MaskOf builds a mask from layers.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// ParseMask builds a mask from layer names. An empty list matches nothing.
func ParseMask(names []string) (LayerMask, error) {
	var m LayerMask
	for _, n := range names {
		l, err := ParseLayer(n)
		if err != nil {
			return 0, err
		}
		m |= 1 << l
	}
	return m, nil
}

// Has reports whether the mask includes the layer.
func (m LayerMask) Has(l Layer) bool {
	return m&(1<<l) != 0
}

// Collider is a static box in the world.
type Collider struct {
	Name  string
	Box   AABB
	Layer Layer
	Solid bool // solid colliders block bodies; non-solid ones only report overlaps
}
