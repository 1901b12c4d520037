package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-console/internal/clock"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
	"github.com/stretchr/testify/require"
)

var (
	seedTime = time.Date(2018, 11, 1, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2024, 5, 17, 14, 30, 0, 0, time.UTC)
)

func newTestStore(t *testing.T) (*repo.InMemoryProductRepository, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(testNow)
	return repo.NewInMemoryProductRepository(clk), clk
}

// runAction feeds lines to the action and returns everything it printed.
func runAction(t *testing.T, a Action, lines ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	err := a.Run(context.Background(), p)
	return out.String(), err
}

func seedProduct(t *testing.T, store repo.ProductRepository, name string, price int64, qty int) int {
	t.Helper()
	p, _, err := store.Upsert(context.Background(), name, price, qty, seedTime)
	require.NoError(t, err)
	return p.ID
}
