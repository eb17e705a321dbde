package render

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintyhq/minty-api/internal/domain"
)

func TestDecodeWriteDropsReadOnlyAndUnknownFields(t *testing.T) {
	seller := uuid.New()
	body := `{
		"id": "00000000-0000-0000-0000-000000000001",
		"created_at": "2020-01-01T00:00:00Z",
		"updated_at": "2020-01-01T00:00:00Z",
		"deleted_at": null,
		"seller_username": "someone",
		"name": "Work Glove 10%",
		"price": 250000,
		"seller": "` + seller.String() + `"
	}`

	w, err := DecodeWrite(domain.KindMarketplaceItem, []byte(body))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "price", "seller"}, w.Fields())

	name, ok := w.Text("name")
	assert.True(t, ok)
	assert.Equal(t, "Work Glove 10%", name)
	price, ok := w.Int("price")
	assert.True(t, ok)
	assert.Equal(t, int64(250000), price)
	id, ok := w.Ref("seller")
	assert.True(t, ok)
	assert.Equal(t, seller, id)
	assert.NoError(t, w.CheckRequired())
}

func TestDecodeWriteErrors(t *testing.T) {
	tests := []struct {
		name      string
		kind      domain.Kind
		body      string
		wantField string
		wantErr   error
	}{
		{name: "not an object", kind: domain.KindGuild, body: `[1,2]`, wantErr: domain.ErrValidation},
		{name: "null body", kind: domain.KindGuild, body: `null`, wantErr: domain.ErrValidation},
		{name: "float price", kind: domain.KindMarketplaceItem, body: `{"price": 12.5}`, wantField: "price"},
		{name: "null price", kind: domain.KindMarketplaceItem, body: `{"price": null}`, wantField: "price"},
		{name: "numeric name", kind: domain.KindGuild, body: `{"name": 7}`, wantField: "name"},
		{name: "malformed reference", kind: domain.KindGuild, body: `{"owner": "mapler"}`, wantField: "owner", wantErr: domain.ErrInvalidID},
		{name: "null required reference", kind: domain.KindGuild, body: `{"owner": null}`, wantField: "owner"},
		{name: "nil id required reference", kind: domain.KindMarketplaceItem, body: `{"seller": "00000000-0000-0000-0000-000000000000"}`, wantField: "seller"},
		{name: "read-only kind", kind: domain.KindMob, body: `{"name": "Snail"}`, wantErr: ErrReadOnlyKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeWrite(tt.kind, []byte(tt.body))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantField != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantField, verr.Field)
			}
		})
	}
}

func TestDecodeWriteNullableReference(t *testing.T) {
	w, err := DecodeWrite(domain.KindUser, []byte(`{"guild": null}`))
	require.NoError(t, err)
	id, ok := w.Ref("guild")
	assert.True(t, ok)
	assert.Equal(t, uuid.Nil, id)
}

func TestDecodeWriteNilIDClearsNullableReference(t *testing.T) {
	w, err := DecodeWrite(domain.KindUser, []byte(`{"guild": "00000000-0000-0000-0000-000000000000"}`))
	require.NoError(t, err)
	id, ok := w.Ref("guild")
	assert.True(t, ok)
	assert.Equal(t, uuid.Nil, id)
}

func TestCheckRequired(t *testing.T) {
	w, err := DecodeWrite(domain.KindUser, []byte(`{"username": "mapler"}`))
	require.NoError(t, err)

	var verr *domain.ValidationError
	require.ErrorAs(t, w.CheckRequired(), &verr)
	assert.Equal(t, "password", verr.Field)
}
