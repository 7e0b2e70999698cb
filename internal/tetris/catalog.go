package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven piece shapes.
type Kind int

const (
	KindI Kind = iota // vertical line
	KindO             // 2×2 square
	KindT             // line of three with a bump on the middle
	KindL             // line of three with a foot on the top right
	KindJ             // line of three with a foot on the top left
	KindS             // zig-zag stepping right
	KindZ             // zig-zag stepping left
	kindCount
)

// Shape is the static description of a piece kind.
type Shape struct {
	Name      string
	Color     core.Color
	CanRotate bool
	// Offsets from the spawn anchor, in row/col units. Index 1 is the rotation pivot.
	Offsets [4]Pos
}

var catalog = [kindCount]Shape{
	KindI: {
		Name: "I", Color: core.ColorCyan, CanRotate: true,
		Offsets: [4]Pos{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
	},
	KindO: {
		Name: "O", Color: core.ColorYellow, CanRotate: false,
		Offsets: [4]Pos{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
	},
	KindT: {
		Name: "T", Color: core.ColorMagenta, CanRotate: true,
		Offsets: [4]Pos{{0, 0}, {1, 0}, {2, 0}, {1, 1}},
	},
	KindL: {
		Name: "L", Color: core.ColorOrange, CanRotate: true,
		Offsets: [4]Pos{{0, 0}, {1, 0}, {2, 0}, {0, 1}},
	},
	KindJ: {
		Name: "J", Color: core.ColorBlue, CanRotate: true,
		Offsets: [4]Pos{{0, 0}, {1, 0}, {2, 0}, {0, -1}},
	},
	KindS: {
		Name: "S", Color: core.ColorGreen, CanRotate: true,
		Offsets: [4]Pos{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
	},
	KindZ: {
		Name: "Z", Color: core.ColorRed, CanRotate: true,
		Offsets: [4]Pos{{0, 0}, {1, 0}, {1, -1}, {2, -1}},
	},
}

// Kinds returns every piece kind in catalog order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Shape returns the catalog entry for k.
func (k Kind) Shape() Shape {
	if k < 0 || k >= kindCount {
		panic(fmt.Sprintf("tetris: unknown piece kind %d", int(k)))
	}
	return catalog[k]
}

// String returns the single-letter shape name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "?"
	}
	return catalog[k].Name
}

// SpawnCells returns the board cells a piece of kind k occupies at anchor.
func (k Kind) SpawnCells(anchor Pos) [4]Pos {
	var cells [4]Pos
	for i, off := range k.Shape().Offsets {
		cells[i] = anchor.Add(off.Row, off.Col)
	}
	return cells
}

// Picker chooses the kind of the next piece.
type Picker func() Kind

// RandomPicker selects uniformly among the seven kinds.
func RandomPicker(rng *rand.Rand) Picker {
	return func() Kind {
		return Kind(rng.Intn(int(kindCount)))
	}
}

// FixedPicker cycles through the given kinds in order. Useful for scripted games.
func FixedPicker(kinds ...Kind) Picker {
	if len(kinds) == 0 {
		panic("tetris: FixedPicker needs at least one kind")
	}
	i := 0
	return func() Kind {
		k := kinds[i%len(kinds)]
		i++
		return k
	}
}
