package fabrik

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/fabrik/schema"
)

// Params carries the generation hints a value generator receives, derived
// from the target column's metadata.
type Params struct {
	// MaxLength is the maximum value length, or 0 if unbounded.
	MaxLength int
	// Unique hints that generated values should not repeat.
	Unique bool
}

// A ValueGenerator produces a field value from generation parameters. It is
// invoked only when no explicit value is set for the field at build time, so
// generators with side effects never observe overridden fields.
type ValueGenerator func(Params) any

// paramsFor derives generation parameters from a column.
func paramsFor(c *schema.Column) Params {
	return Params{MaxLength: c.MaxLength(), Unique: c.IsUnique()}
}

const (
	genAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	genStringLen = 16
)

// generateValue produces a value for a column that permits NULL but received
// neither an explicit value nor a generated one. Used when nullable
// generation is enabled on the builder or context.
func generateValue(c *schema.Column) any {
	p := paramsFor(c)
	switch c.Type() {
	case schema.TypeString:
		return randString(p)
	case schema.TypeInt:
		return rand.Int64N(1 << 31)
	case schema.TypeFloat:
		return rand.Float64()
	case schema.TypeBool:
		return rand.IntN(2) == 1
	case schema.TypeTime:
		return time.Now().UTC()
	case schema.TypeUUID:
		return uuid.New()
	case schema.TypeBytes:
		b := make([]byte, genStringLen)
		for i := range b {
			b[i] = byte(rand.IntN(256))
		}
		return b
	default:
		return nil
	}
}

func randString(p Params) string {
	n := genStringLen
	if p.MaxLength > 0 && p.MaxLength < n {
		n = p.MaxLength
	}
	if p.Unique {
		// UUIDs are cheap and collision-free; truncate to the column bound.
		s := uuid.NewString()
		if n < len(s) {
			return s[:n]
		}
		return s
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = genAlphabet[rand.IntN(len(genAlphabet))]
	}
	return string(b)
}
