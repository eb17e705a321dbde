package domain

import "sort"

// CraftingRecipe turns ingredients into ResultQuantity of ResultItem.
type CraftingRecipe struct {
	GameData
	ResultItemID   int64                `gorm:"not null;index" json:"-"`
	ResultItem     *Item                `gorm:"constraint:OnDelete:CASCADE" json:"result_item"`
	ResultQuantity int64                `gorm:"not null;default:1" json:"result_quantity" validate:"gte=1"`
	MesoCost       *int64               `json:"meso_cost" validate:"omitempty,gte=0"`
	CrafterNPCID   *int64               `gorm:"column:crafter_npc_id;index" json:"-"`
	CrafterNPC     *NPC                 `gorm:"constraint:OnDelete:SET NULL" json:"crafter_npc"`
	Ingredients    []CraftingIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CraftingRecipe) TableName() string { return "game_craftingrecipe" }
func (CraftingRecipe) Kind() Kind        { return KindRecipe }

// CraftingIngredient consumes Quantity of an item per craft.
type CraftingIngredient struct {
	Record
	RecipeID int64           `gorm:"not null;uniqueIndex:idx_crafting_ingredient_pair" json:"-"`
	Recipe   *CraftingRecipe `gorm:"constraint:OnDelete:CASCADE" json:"recipe"`
	ItemID   int64           `gorm:"not null;uniqueIndex:idx_crafting_ingredient_pair" json:"-"`
	Item     *Item           `gorm:"constraint:OnDelete:CASCADE" json:"item"`
	Quantity int64           `gorm:"not null;default:1" json:"quantity" validate:"gte=1"`
}

func (CraftingIngredient) TableName() string { return "game_crafting_ingredient" }
func (CraftingIngredient) Kind() Kind        { return KindCraftingIngredient }

// SortIngredients orders ingredients by item name.
func SortIngredients(ingredients []CraftingIngredient) {
	sort.SliceStable(ingredients, func(i, j int) bool {
		return itemName(ingredients[i].Item) < itemName(ingredients[j].Item)
	})
}
