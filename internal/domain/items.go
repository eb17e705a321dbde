package domain

// Item slots.
const (
	SlotEquip = "equip"
	SlotUse   = "use"
	SlotSetup = "setup"
	SlotEtc   = "etc"
	SlotCash  = "cash"
)

// Item categories.
const (
	CategoryWeapon     = "weapon"
	CategoryArmor      = "armor"
	CategoryAccessory  = "accessory"
	CategoryConsumable = "consumable"
	CategoryAmmo       = "ammo"
	CategoryScroll     = "scroll"
	CategoryQuest      = "quest"
	CategoryMisc       = "misc"
)

// Item is anything a character can hold. Attributes carries extended fields
// discovered during ingestion (stack size, reserve price and so on).
type Item struct {
	GameData
	Slot        string         `gorm:"size:20;not null;default:'';index:idx_item_slot_category" json:"slot" validate:"omitempty,oneof=equip use setup etc cash"`
	Category    string         `gorm:"size:20;not null;default:'';index:idx_item_slot_category" json:"category" validate:"omitempty,oneof=weapon armor accessory consumable ammo scroll quest misc"`
	Subcategory string         `gorm:"size:50;not null;default:''" json:"subcategory" validate:"max=50"`
	Attributes  map[string]any `gorm:"serializer:json;type:jsonb" json:"attributes"`
	Drops       []ItemDrop     `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Item) TableName() string { return "game_item" }
func (Item) Kind() Kind        { return KindItem }

// ItemDrop records that a mob drops an item with the given probability.
type ItemDrop struct {
	Record
	ItemID   int64   `gorm:"not null;uniqueIndex:idx_item_drop_pair" json:"-"`
	Item     *Item   `gorm:"constraint:OnDelete:CASCADE" json:"item"`
	MobID    int64   `gorm:"not null;uniqueIndex:idx_item_drop_pair" json:"-"`
	Mob      *Mob    `gorm:"constraint:OnDelete:CASCADE" json:"mob"`
	DropRate float64 `gorm:"not null;index" json:"drop_rate" validate:"gte=0,lte=1"`
}

func (ItemDrop) TableName() string { return "game_itemdrop" }
func (ItemDrop) Kind() Kind        { return KindItemDrop }
