package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintyhq/minty-api/internal/domain"
	"github.com/mintyhq/minty-api/internal/platform/postgres"
	"github.com/mintyhq/minty-api/internal/render"
	"github.com/mintyhq/minty-api/internal/testdb"
)

func TestApplyWriteNilReference(t *testing.T) {
	ctx := context.Background()
	db := testdb.NewSQLite(t)
	records := postgres.NewRecords(db, nil)
	fx := testdb.NewFixtures(t, db)
	u := fx.User("mapler")
	g := fx.Guild(u, "Ossyria")

	tests := []struct {
		name      string
		entity    domain.Entity
		write     render.Write
		wantField string
		wantCols  map[string]any
	}{
		{
			name:      "required seller",
			entity:    &domain.MarketplaceItem{},
			write:     render.Write{Kind: domain.KindMarketplaceItem, Values: map[string]any{"seller": uuid.Nil}},
			wantField: "seller",
		},
		{
			name:      "required owner",
			entity:    g,
			write:     render.Write{Kind: domain.KindGuild, Values: map[string]any{"owner": uuid.Nil}},
			wantField: "owner",
		},
		{
			name:     "nullable guild is cleared",
			entity:   u,
			write:    render.Write{Kind: domain.KindUser, Values: map[string]any{"guild": uuid.Nil}},
			wantCols: map[string]any{"guild_id": (*int64)(nil)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cols map[string]any
			var err error
			require.NotPanics(t, func() {
				cols, err = applyWrite(ctx, records, tt.entity, tt.write)
			})

			if tt.wantField != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, cols)
		})
	}
}
