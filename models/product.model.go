package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog entry managed by admins and listed publicly.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Image         string             `bson:"image" json:"image"`
	Category      string             `bson:"category" json:"category"`
	IsAvailable   bool               `bson:"is_available" json:"isAvailable"`
	Featured      bool               `bson:"featured" json:"featured"`
	DisplayOnGift bool               `bson:"display_on_gift" json:"displayOnGift"`
	DisplayOnMenu bool               `bson:"display_on_menu" json:"displayOnMenu"`
	Rating        *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt     time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt     time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ProductFilter narrows public catalog listings.
type ProductFilter struct {
	Category      string
	Featured      bool
	DisplayOnGift bool
	DisplayOnMenu bool
}
