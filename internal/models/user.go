package models

// User represents an authenticated principal. Rows are created lazily on a
// principal's first authenticated access and are never deleted by application
// logic; deleting a user cascades to all owned rows at the store level.
type User struct {
	Base
	ExternalID string `gorm:"uniqueIndex;not null" json:"externalId"`

	// Relationships
	Accounts     []Account     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"accounts,omitempty"`
	Categories   []Category    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Transactions []Transaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"transactions,omitempty"`
}
