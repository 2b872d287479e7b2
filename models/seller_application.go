package models

import "gorm.io/gorm"

const (
	ApplicationPending  = "PENDING"
	ApplicationApproved = "APPROVED"
	ApplicationRejected = "REJECTED"
)

// SellerApplication tracks a buyer's request to become a seller.
// At most one PENDING application may exist per user; rejected
// applications stay as history and a new row is inserted on resubmission.
type SellerApplication struct {
	gorm.Model
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	Status      string `gorm:"default:PENDING;index" json:"status"`
	Message     string `json:"message"`
	ReviewerID  *uint  `json:"reviewer_id"`
	ReviewNotes string `json:"review_notes"`
	User        User   `json:"user"`
}
