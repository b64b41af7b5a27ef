package tracking

import (
	"strings"

	"github.com/google/uuid"
)

const prefix = "TRK-"

// Generator derives dispatch tracking numbers from random UUIDs: TRK- followed by the
// first eight hex digits in upper case.
type Generator struct{}

func NewGenerator() Generator {
	return Generator{}
}

func (Generator) Next() string {
	return prefix + strings.ToUpper(uuid.NewString()[:8])
}
