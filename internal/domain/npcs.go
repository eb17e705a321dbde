package domain

type NPC struct {
	GameData
	Locations []NPCLocation `gorm:"foreignKey:NPCID;constraint:OnDelete:CASCADE" json:"-"`
	ShopItems []NPCShopItem `gorm:"foreignKey:NPCID;constraint:OnDelete:CASCADE" json:"-"`
}

func (NPC) TableName() string { return "game_npc" }
func (NPC) Kind() Kind        { return KindNPC }

// NPCLocation places an NPC on a map.
type NPCLocation struct {
	Record
	NPCID int64 `gorm:"column:npc_id;not null;uniqueIndex:idx_npc_location_pair" json:"-"`
	NPC   *NPC  `gorm:"constraint:OnDelete:CASCADE" json:"npc"`
	MapID int64 `gorm:"not null;uniqueIndex:idx_npc_location_pair" json:"-"`
	Map   *Map  `gorm:"constraint:OnDelete:CASCADE" json:"map"`
}

func (NPCLocation) TableName() string { return "game_npc_location" }
func (NPCLocation) Kind() Kind        { return KindNPCLocation }

// NPCShopItem lists an item in an NPC shop. Price is in mesos.
type NPCShopItem struct {
	Record
	NPCID  int64 `gorm:"column:npc_id;not null;uniqueIndex:idx_npc_shop_item_pair" json:"-"`
	NPC    *NPC  `gorm:"constraint:OnDelete:CASCADE" json:"npc"`
	ItemID int64 `gorm:"not null;uniqueIndex:idx_npc_shop_item_pair" json:"-"`
	Item   *Item `gorm:"constraint:OnDelete:CASCADE" json:"item"`
	Price  int64 `gorm:"not null" json:"price" validate:"gte=0"`
}

func (NPCShopItem) TableName() string { return "game_npc_shop_item" }
func (NPCShopItem) Kind() Kind        { return KindNPCShopItem }
