package ids

import (
	"fmt"

	"github.com/gofrs/uuid"
)

// Generator hands out ids for surveys, questions, options and responses.
// Injecting it keeps id assignment deterministic under test.
type Generator interface {
	NewID() string
}

type uuidGenerator struct{}

// UUID returns a Generator producing random v4 UUID strings.
func UUID() Generator {
	return uuidGenerator{}
}

func (uuidGenerator) NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}

type sequence struct {
	prefix string
	n      int
}

// Sequence returns a Generator producing "<prefix>1", "<prefix>2", ...
func Sequence(prefix string) Generator {
	return &sequence{prefix: prefix}
}

func (s *sequence) NewID() string {
	s.n++
	return fmt.Sprintf("%s%d", s.prefix, s.n)
}
