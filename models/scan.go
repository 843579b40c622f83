package models

import "time"

// Scan is one processed receipt image and its parsed outcome.
type Scan struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	FileName  string `gorm:"size:255;not null"`
	RawText   string `gorm:"type:text"`
	Formatted string `gorm:"type:text"`
	// Total is nil when no total line was detected on the receipt.
	Total *int64
	Items []ScanItem `gorm:"foreignKey:ScanID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// ScanItem is one extracted product line, ordered by Position.
type ScanItem struct {
	ID       uint `gorm:"primaryKey"`
	ScanID   uint `gorm:"index;not null"`
	Position int  `gorm:"not null"`
	Name     string `gorm:"size:255;not null"`
	Price    int64  `gorm:"not null"` // whole yen
}
