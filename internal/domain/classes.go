package domain

// MapleClass is a top-level character class such as Warrior or Magician.
type MapleClass struct {
	GameData
	Jobs []Job `gorm:"foreignKey:MapleClassID;constraint:OnDelete:CASCADE" json:"-"`
}

func (MapleClass) TableName() string { return "game_mapleclass" }
func (MapleClass) Kind() Kind        { return KindClass }

// Job is an advancement within a class.
type Job struct {
	GameData
	MapleClassID int64       `gorm:"not null;index" json:"-"`
	MapleClass   *MapleClass `gorm:"constraint:OnDelete:CASCADE" json:"maple_class"`
	Skills       []Skill     `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Job) TableName() string { return "game_job" }
func (Job) Kind() Kind        { return KindJob }

// Skill belongs to exactly one job.
type Skill struct {
	GameData
	JobID int64 `gorm:"not null;index" json:"-"`
	Job   *Job  `gorm:"constraint:OnDelete:CASCADE" json:"job"`
}

func (Skill) TableName() string { return "game_skill" }
func (Skill) Kind() Kind        { return KindSkill }
