package memory_test

import (
	"testing"

	"github.com/mokiat/gog"
	"github.com/samber/lo"
	"github.com/soartravel/soar/memory"
	"github.com/stretchr/testify/assert"
)

func TestTopN(t *testing.T) {
	records := []memory.Record{
		{ID: "a", Score: gog.PtrOf(0.2)},
		{ID: "b"},
		{ID: "c", Score: gog.PtrOf(0.9)},
		{ID: "d", Score: gog.PtrOf(0.2)},
		{ID: "e", Score: gog.PtrOf(0.5)},
	}

	top := memory.TopN(records, 3)
	assert.Equal(t, []string{"c", "e", "a"}, lo.Map(top, func(r memory.Record, _ int) string { return r.ID }))

	// input order is preserved
	assert.Equal(t, "a", records[0].ID)
}

func TestTopN_TiesKeepInputOrder(t *testing.T) {
	records := []memory.Record{
		{ID: "x"},
		{ID: "y", Score: gog.PtrOf(0.0)},
		{ID: "z"},
		{ID: "w"},
	}

	top := memory.TopN(records, 3)
	assert.Equal(t, []string{"x", "y", "z"}, lo.Map(top, func(r memory.Record, _ int) string { return r.ID }))
}

func TestTopN_FewerThanN(t *testing.T) {
	records := []memory.Record{{ID: "only", Score: gog.PtrOf(0.1)}}
	assert.Len(t, memory.TopN(records, 3), 1)
	assert.Empty(t, memory.TopN(nil, 3))
}
