package domain

type Mob struct {
	GameData
	HP     int64      `gorm:"column:hp;not null;index" json:"hp" validate:"gte=0"`
	MP     int64      `gorm:"column:mp;not null" json:"mp" validate:"gte=0"`
	EXP    int64      `gorm:"column:exp;not null;index" json:"exp" validate:"gte=0"`
	Mesos  int64      `gorm:"not null" json:"mesos" validate:"gte=0"`
	Drops  []ItemDrop `gorm:"foreignKey:MobID;constraint:OnDelete:CASCADE" json:"-"`
	Spawns []MobSpawn `gorm:"foreignKey:MobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Mob) TableName() string { return "game_mob" }
func (Mob) Kind() Kind        { return KindMob }

// MobSpawn places a mob on a map.
type MobSpawn struct {
	Record
	MobID int64 `gorm:"not null;uniqueIndex:idx_mob_spawn_pair" json:"-"`
	Mob   *Mob  `gorm:"constraint:OnDelete:CASCADE" json:"mob"`
	MapID int64 `gorm:"not null;uniqueIndex:idx_mob_spawn_pair" json:"-"`
	Map   *Map  `gorm:"constraint:OnDelete:CASCADE" json:"map"`
}

func (MobSpawn) TableName() string { return "game_mobspawn" }
func (MobSpawn) Kind() Kind        { return KindMobSpawn }
