package domain

import (
	"sort"
)

// Quest is started by an NPC and may require an earlier quest, a class or a
// job. Prerequisite chains are not guaranteed to be acyclic in storage.
type Quest struct {
	GameData
	StartedByID         int64          `gorm:"not null;index" json:"-"`
	StartedBy           *NPC           `gorm:"constraint:OnDelete:CASCADE" json:"started_by"`
	QuestLine           string         `gorm:"size:200;not null;default:'';index" json:"quest_line" validate:"max=200"`
	MesoReward          *int64         `json:"meso_reward" validate:"omitempty,gte=0"`
	EXPReward           *int64         `gorm:"column:exp_reward" json:"exp_reward" validate:"omitempty,gte=0"`
	PrerequisiteQuestID *int64         `gorm:"index" json:"-"`
	PrerequisiteQuest   *Quest         `gorm:"constraint:OnDelete:SET NULL" json:"prerequisite_quest"`
	RequiredLevel       *int64         `gorm:"index" json:"required_level" validate:"omitempty,gte=0"`
	RequiredClassID     *int64         `gorm:"index" json:"-"`
	RequiredClass       *MapleClass    `gorm:"constraint:OnDelete:SET NULL" json:"required_class"`
	RequiredJobID       *int64         `gorm:"index" json:"-"`
	RequiredJob         *Job           `gorm:"constraint:OnDelete:SET NULL" json:"required_job"`
	MiscRequirements    map[string]any `gorm:"serializer:json;type:jsonb" json:"misc_requirements"`
	Rewards             []QuestReward  `gorm:"foreignKey:QuestID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Quest) TableName() string { return "game_quest" }
func (Quest) Kind() Kind        { return KindQuest }

// GuaranteedGroup is the reward group every player receives in full.
const GuaranteedGroup = 0

// QuestReward grants Quantity of an item. Rewards sharing a positive
// RewardGroup form a pool the player picks exactly one from.
type QuestReward struct {
	Record
	QuestID     int64  `gorm:"not null;uniqueIndex:idx_quest_reward_pair" json:"-"`
	Quest       *Quest `gorm:"constraint:OnDelete:CASCADE" json:"quest"`
	ItemID      int64  `gorm:"not null;uniqueIndex:idx_quest_reward_pair" json:"-"`
	Item        *Item  `gorm:"constraint:OnDelete:CASCADE" json:"item"`
	Quantity    int64  `gorm:"not null;default:1" json:"quantity" validate:"gte=1"`
	RewardGroup int64  `gorm:"not null;default:0" json:"reward_group" validate:"gte=0"`
}

func (QuestReward) TableName() string { return "game_questreward" }
func (QuestReward) Kind() Kind        { return KindQuestReward }

// Guaranteed reports whether the reward is always granted.
func (r QuestReward) Guaranteed() bool {
	return r.RewardGroup == GuaranteedGroup
}

// RewardPool is one mutually exclusive choice group.
type RewardPool struct {
	Group   int64
	Rewards []QuestReward
}

// RewardSet is a quest's rewards split by interpretation.
type RewardSet struct {
	Guaranteed []QuestReward
	Choices    []RewardPool
}

// SortRewards orders rewards by group, then by item name. Rewards whose item
// is not loaded sort last within their group.
func SortRewards(rewards []QuestReward) {
	sort.SliceStable(rewards, func(i, j int) bool {
		a, b := rewards[i], rewards[j]
		if a.RewardGroup != b.RewardGroup {
			return a.RewardGroup < b.RewardGroup
		}
		return itemName(a.Item) < itemName(b.Item)
	})
}

// GroupRewards partitions rewards into the guaranteed set and the choice
// pools. The input is not modified.
func GroupRewards(rewards []QuestReward) RewardSet {
	sorted := make([]QuestReward, len(rewards))
	copy(sorted, rewards)
	SortRewards(sorted)

	var set RewardSet
	for _, r := range sorted {
		if r.Guaranteed() {
			set.Guaranteed = append(set.Guaranteed, r)
			continue
		}
		n := len(set.Choices)
		if n == 0 || set.Choices[n-1].Group != r.RewardGroup {
			set.Choices = append(set.Choices, RewardPool{Group: r.RewardGroup})
			n++
		}
		set.Choices[n-1].Rewards = append(set.Choices[n-1].Rewards, r)
	}
	return set
}

func itemName(item *Item) string {
	if item == nil {
		return "\uffff"
	}
	return item.Name
}
