package models

import (
	"time"
)

type Book struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Price        float64   `gorm:"not null" json:"price"`
	Description  string    `gorm:"type:text" json:"description"`
	CategoryName string    `gorm:"not null;index" json:"category_name"`
	Category     Category  `gorm:"foreignKey:CategoryName;references:Name;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	CoverPath    *string   `json:"cover_path"` // opaque file reference, never interpreted
	Stock        int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 非数据库字段，查询时按需填充
	PurchaseCount int     `gorm:"-" json:"purchase_count,omitempty"`
	ReviewCount   int     `gorm:"-" json:"review_count,omitempty"`
	AvgRating     float64 `gorm:"-" json:"avg_rating,omitempty"`
}
