package idgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/smallbiznis/tavolo/internal/clock"
	"go.uber.org/fx"
)

// Generator issues the externally visible identifiers used by the
// coordinator. Injected so tests can supply deterministic ids.
type Generator interface {
	// TransactionID returns a waiting-transaction id, "M" followed by
	// a unix-millisecond timestamp.
	TransactionID() string
	// RequestID returns a bill-request id, "<prefix>-<unix-ms>-<rand8>".
	RequestID(prefix string) string
}

type generator struct {
	clock clock.Clock
}

func New(clk clock.Clock) Generator {
	return &generator{clock: clk}
}

func (g *generator) TransactionID() string {
	return fmt.Sprintf("M%d", g.clock.Now().UnixMilli())
}

func (g *generator) RequestID(prefix string) string {
	return fmt.Sprintf("%s-%d-%s", prefix, g.clock.Now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

var Module = fx.Module("idgen",
	fx.Provide(New),
)
