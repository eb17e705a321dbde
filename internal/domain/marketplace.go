package domain

// MarketplaceItem is a listing posted by a user. Price is in mesos.
type MarketplaceItem struct {
	Record
	Name        string `gorm:"size:200;not null;index" json:"name" validate:"required,max=200"`
	Description string `gorm:"type:text;not null;default:''" json:"description"`
	Price       int64  `gorm:"not null;index" json:"price" validate:"gte=0"`
	SellerID    int64  `gorm:"not null;index" json:"-"`
	Seller      *User  `gorm:"constraint:OnDelete:CASCADE" json:"seller"`
}

func (MarketplaceItem) TableName() string { return "mogul_item" }
func (MarketplaceItem) Kind() Kind        { return KindMarketplaceItem }
