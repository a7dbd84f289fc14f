// Package testutil defines support code for unit tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/creachadair/ontree/tree"
)

// Config controls the shape of random documents.
type Config struct {
	MaxDepth int // maximum container nesting below the root (default 6)
	MaxWidth int // maximum children per container (default 5)
	MaxText  int // maximum runes per key or string (default 12)

	// If true, numbers are restricted to multiples of 1/8 with small
	// magnitude, which every decoder represents exactly.
	ShortNumbers bool
}

func (c Config) withDefaults() Config {
	if c.MaxDepth <= 0 {
		c.MaxDepth = 6
	}
	if c.MaxWidth <= 0 {
		c.MaxWidth = 5
	}
	if c.MaxText <= 0 {
		c.MaxText = 12
	}
	return c
}

// RandomTree constructs a random document using values drawn from rng.
func RandomTree(rng *rand.Rand, cfg Config, opts *tree.Options) *tree.Tree {
	g := gen{rng: rng, cfg: cfg.withDefaults()}
	t := tree.New(opts)
	g.fill(t, t.Root(), 0)
	return t
}

type gen struct {
	rng *rand.Rand
	cfg Config
}

func (g gen) fill(t *tree.Tree, parent *tree.Node, depth int) {
	n := g.rng.IntN(g.cfg.MaxWidth + 1)
	for i := range n {
		obj := parent.Kind() == tree.Object
		var name string
		if obj {
			// Member names are distinct within an object.
			name = strconv.Itoa(i) + ":" + RandomString(g.rng, g.cfg.MaxText)
		}
		kind := tree.Kind(1 + g.rng.IntN(6))
		if depth >= g.cfg.MaxDepth && (kind == tree.Object || kind == tree.Array) {
			kind = tree.Null
		}

		var c *tree.Node
		switch kind {
		case tree.Object:
			if obj {
				c = t.InsertObject(parent, name)
			} else {
				c = t.AppendObject(parent)
			}
			g.fill(t, c, depth+1)
		case tree.Array:
			if obj {
				c = t.InsertArray(parent, name)
			} else {
				c = t.AppendArray(parent)
			}
			g.fill(t, c, depth+1)
		case tree.Number:
			v := RandomNumber(g.rng)
			if g.cfg.ShortNumbers {
				v = float64(g.rng.IntN(1<<16)-1<<15) / 8
			}
			if obj {
				t.InsertNumber(parent, name, v)
			} else {
				t.AppendNumber(parent, v)
			}
		case tree.String:
			if s := RandomString(g.rng, g.cfg.MaxText); obj {
				t.InsertString(parent, name, s)
			} else {
				t.AppendString(parent, s)
			}
		case tree.Bool:
			if v := g.rng.IntN(2) == 0; obj {
				t.InsertBool(parent, name, v)
			} else {
				t.AppendBool(parent, v)
			}
		default:
			if obj {
				t.InsertNull(parent, name)
			} else {
				t.AppendNull(parent)
			}
		}
	}
}

// RandomNumber returns a random finite number. Small integers, simple
// fractions and arbitrary bit patterns are all likely.
func RandomNumber(rng *rand.Rand) float64 {
	switch rng.IntN(3) {
	case 0:
		return float64(rng.IntN(2000) - 1000)
	case 1:
		return (rng.Float64() - 0.5) * 1e6
	}
	for {
		v := math.Float64frombits(rng.Uint64())
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v
		}
	}
}

// specials are runes that need escaping, or that exercise multi-byte
// encodings.
var specials = []rune{0, '\b', '\f', '\n', '\r', '\t', 0x1b, '"', '\\', '/', 0x7f, 0xe9, 0x65e5, 0x1f600}

// RandomString returns a valid UTF-8 string of up to maxLen runes.
func RandomString(rng *rand.Rand, maxLen int) string {
	var sb strings.Builder
	for range rng.IntN(maxLen + 1) {
		switch rng.IntN(4) {
		case 0:
			sb.WriteRune(specials[rng.IntN(len(specials))])
		case 1:
			r := rune(rng.IntN(0x10ffff-0x800) + 0x800)
			if r >= 0xd800 && r < 0xe000 {
				r = 0xfffd
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte(byte(' ' + rng.IntN(0x5f)))
		}
	}
	return sb.String()
}
