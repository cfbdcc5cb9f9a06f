package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Repuestos-api/internal/application/usecase"
	"github.com/jhoicas/Repuestos-api/internal/infrastructure/memory"
)

func TestActivityUseCase_ListRecentMasNuevasPrimero(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for i := 0; i < 3; i++ {
		require.NoError(t, store.ActivityLogs().Append(ctx, fmt.Sprintf("evento %d", i)))
	}

	out, err := usecase.NewActivityUseCase(store.ActivityLogs()).ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "evento 2", out[0].Description)
	assert.Equal(t, "evento 1", out[1].Description)
	_, err = time.Parse(time.RFC3339, out[0].Date)
	assert.NoError(t, err, "fecha en RFC3339")
}

func TestActivityUseCase_LimitePorDefecto(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	for i := 0; i < 60; i++ {
		require.NoError(t, store.ActivityLogs().Append(ctx, "x"))
	}

	out, err := usecase.NewActivityUseCase(store.ActivityLogs()).ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, out, 50)
}
