package domain

import (
	"slices"
	"time"
)

// MaxTagsPerUser caps the distinct tag values one user may put on one guild.
const MaxTagsPerUser = 5

// Fame votes.
const (
	Fame   = 1
	Defame = -1
)

// TagValues is the fixed tag vocabulary, in display order.
var TagValues = []string{
	"bossers",
	"casuals",
	"dead_guild",
	"drama",
	"f2p_pride",
	"fashion_story",
	"helpful",
	"moguls",
	"no_lifers",
	"noob_friendly",
	"pq_enjoyers",
	"social",
	"uncs",
	"weebs",
	"wholesome",
}

// ValidTag reports whether value belongs to the tag vocabulary.
func ValidTag(value string) bool {
	return slices.Contains(TagValues, value)
}

// Guild is a player guild. Its owner is a user; members point back at it
// through User.GuildID and are detached, not deleted, when it is purged.
type Guild struct {
	Record
	Name        string      `gorm:"size:100;not null;uniqueIndex" json:"name" validate:"required,max=100"`
	Description string      `gorm:"type:text;not null;default:''" json:"description"`
	OwnerID     int64       `gorm:"not null;index" json:"-"`
	Owner       *User       `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner"`
	Members     []User      `gorm:"foreignKey:GuildID;constraint:OnDelete:SET NULL" json:"-"`
	FameVotes   []GuildFame `gorm:"foreignKey:GuildID;constraint:OnDelete:CASCADE" json:"-"`
	Tags        []GuildTag  `gorm:"foreignKey:GuildID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Guild) TableName() string { return "hq_guild" }
func (Guild) Kind() Kind        { return KindGuild }

// GuildFame is one user's vote on a guild. A user has at most one vote per
// guild; voting again replaces it.
type GuildFame struct {
	Record
	GuildID int64  `gorm:"not null;uniqueIndex:idx_guild_fame_pair" json:"-"`
	Guild   *Guild `gorm:"constraint:OnDelete:CASCADE" json:"guild"`
	UserID  int64  `gorm:"not null;uniqueIndex:idx_guild_fame_pair" json:"-"`
	User    *User  `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Value   int    `gorm:"not null" json:"value" validate:"oneof=-1 1"`
}

func (GuildFame) TableName() string { return "hq_guild_fame" }
func (GuildFame) Kind() Kind        { return KindGuildFame }

// GuildTag is one tag a user put on a guild.
type GuildTag struct {
	Record
	GuildID int64  `gorm:"not null;uniqueIndex:idx_guild_tag_triple;index:idx_guild_tag_user" json:"-"`
	Guild   *Guild `gorm:"constraint:OnDelete:CASCADE" json:"guild"`
	UserID  int64  `gorm:"not null;uniqueIndex:idx_guild_tag_triple;index:idx_guild_tag_user" json:"-"`
	User    *User  `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Value   string `gorm:"size:20;not null;uniqueIndex:idx_guild_tag_triple" json:"value"`
}

func (GuildTag) TableName() string { return "hq_guild_tag" }
func (GuildTag) Kind() Kind        { return KindGuildTag }

// FameTotals summarizes the fame votes on a guild.
type FameTotals struct {
	Total  int64
	Fame   int64
	Defame int64
}

// TagCount is the number of users who applied a tag value.
type TagCount struct {
	Value string
	Count int64
}

// HistoryAction names the change a history row records.
type HistoryAction string

const (
	HistoryCreated HistoryAction = "created"
	HistoryChanged HistoryAction = "changed"
	HistoryRemoved HistoryAction = "removed"
)

// GuildFameHistory is an append-only snapshot of a fame vote, written in the
// same transaction as the change it records.
type GuildFameHistory struct {
	ID         int64         `gorm:"primaryKey" json:"-"`
	GuildID    int64         `gorm:"not null;index:idx_guild_fame_history" json:"-"`
	Guild      *Guild        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID     int64         `gorm:"not null" json:"-"`
	User       *User         `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Value      int           `gorm:"not null" json:"value"`
	Action     HistoryAction `gorm:"size:10;not null" json:"action"`
	RecordedAt time.Time     `gorm:"not null;index:idx_guild_fame_history" json:"recorded_at"`
}

func (GuildFameHistory) TableName() string { return "hq_guild_fame_history" }

// GuildTagHistory is an append-only snapshot of a guild tag.
type GuildTagHistory struct {
	ID         int64         `gorm:"primaryKey" json:"-"`
	GuildID    int64         `gorm:"not null;index:idx_guild_tag_history" json:"-"`
	Guild      *Guild        `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID     int64         `gorm:"not null" json:"-"`
	User       *User         `gorm:"constraint:OnDelete:CASCADE" json:"user"`
	Value      string        `gorm:"size:20;not null" json:"value"`
	Action     HistoryAction `gorm:"size:10;not null" json:"action"`
	RecordedAt time.Time     `gorm:"not null;index:idx_guild_tag_history" json:"recorded_at"`
}

func (GuildTagHistory) TableName() string { return "hq_guild_tag_history" }
