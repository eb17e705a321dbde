package domain

// Continent is the root of the world hierarchy (e.g. Victoria Island).
type Continent struct {
	GameData
	Regions []Region `gorm:"foreignKey:ContinentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Continent) TableName() string { return "game_continent" }
func (Continent) Kind() Kind        { return KindContinent }

type Region struct {
	GameData
	ContinentID int64      `gorm:"not null;index" json:"-"`
	Continent   *Continent `gorm:"constraint:OnDelete:CASCADE" json:"continent"`
	Maps        []Map      `gorm:"foreignKey:RegionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Region) TableName() string { return "game_region" }
func (Region) Kind() Kind        { return KindRegion }

// Map is a single playable area. Mobs spawn on it and NPCs stand on it.
type Map struct {
	GameData
	RegionID     int64         `gorm:"not null;index" json:"-"`
	Region       *Region       `gorm:"constraint:OnDelete:CASCADE" json:"region"`
	Spawns       []MobSpawn    `gorm:"foreignKey:MapID;constraint:OnDelete:CASCADE" json:"-"`
	NPCLocations []NPCLocation `gorm:"foreignKey:MapID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Map) TableName() string { return "game_map" }
func (Map) Kind() Kind        { return KindMap }
