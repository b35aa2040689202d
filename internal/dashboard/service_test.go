package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/tea-order-assistant/internal/models"
)

type fakeSource struct {
	calls int
	snap  models.Snapshot
}

func (f *fakeSource) Snapshot(context.Context) (models.Snapshot, error) {
	f.calls++
	return f.snap, nil
}

func TestGetSnapshot_Delegates(t *testing.T) {
	src := &fakeSource{snap: models.Snapshot{
		Labels:     []string{"t1"},
		Buyers:     []string{"Alice"},
		Products:   []string{"Green Tea"},
		Quantities: []int{20},
	}}
	svc := NewService(src)

	for i := 0; i < 3; i++ {
		got, err := svc.GetSnapshot(context.Background())
		require.NoError(t, err)
		assert.Equal(t, src.snap, got)
	}
	assert.Equal(t, 3, src.calls)
}
