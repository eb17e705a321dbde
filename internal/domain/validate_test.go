package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		entity    Entity
		wantField string
		wantErr   error
	}{
		{
			name:   "valid drop",
			entity: &ItemDrop{DropRate: 0.25},
		},
		{
			name:   "drop rate at upper bound",
			entity: &ItemDrop{DropRate: 1},
		},
		{
			name:      "drop rate above one",
			entity:    &ItemDrop{DropRate: 1.5},
			wantField: "drop_rate",
		},
		{
			name:      "negative drop rate",
			entity:    &ItemDrop{DropRate: -0.1},
			wantField: "drop_rate",
		},
		{
			name:   "zero reward quantity defaults to one",
			entity: &QuestReward{},
		},
		{
			name:      "negative reward quantity",
			entity:    &QuestReward{Quantity: -2},
			wantField: "quantity",
		},
		{
			name:      "negative reward group",
			entity:    &QuestReward{Quantity: 1, RewardGroup: -1},
			wantField: "reward_group",
		},
		{
			name:      "negative ingredient quantity",
			entity:    &CraftingIngredient{Quantity: -1},
			wantField: "quantity",
		},
		{
			name:      "negative shop price",
			entity:    &NPCShopItem{Price: -5},
			wantField: "price",
		},
		{
			name:      "recipe without name",
			entity:    &CraftingRecipe{},
			wantField: "name",
		},
		{
			name:      "unknown item slot",
			entity:    &Item{GameData: GameData{Name: "Red Potion"}, Slot: "pocket"},
			wantField: "slot",
		},
		{
			name:   "item with empty slot",
			entity: &Item{GameData: GameData{Name: "Red Potion"}},
		},
		{
			name:      "unknown tag",
			entity:    &GuildTag{Value: "speedrunners"},
			wantField: "value",
			wantErr:   ErrInvalidTag,
		},
		{
			name:   "known tag",
			entity: &GuildTag{Value: "helpful"},
		},
		{
			name:      "fame out of range",
			entity:    &GuildFame{Value: 2},
			wantField: "value",
			wantErr:   ErrInvalidFame,
		},
		{
			name:      "negative marketplace price",
			entity:    &MarketplaceItem{Name: "Maple Leaf", Price: -1},
			wantField: "price",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tc.entity)
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
			assert.True(t, errors.Is(err, ErrValidation))
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}

func TestValidateAppliesQuantityDefaults(t *testing.T) {
	t.Parallel()

	reward := &QuestReward{}
	require.NoError(t, Validate(reward))
	assert.EqualValues(t, 1, reward.Quantity)

	recipe := &CraftingRecipe{GameData: GameData{Name: "Steel Plate"}}
	require.NoError(t, Validate(recipe))
	assert.EqualValues(t, 1, recipe.ResultQuantity)
}

func TestValidateSkipsLoadedRelations(t *testing.T) {
	t.Parallel()

	// the loaded item is invalid on its own, but only the drop is checked
	drop := &ItemDrop{DropRate: 0.5, Item: &Item{}}
	assert.NoError(t, Validate(drop))
}
