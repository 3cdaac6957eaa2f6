package domain

import "time"

const RoomConditionNormal = "NORMAL"

type Room struct {
	ID              int64     `json:"id" gorm:"primaryKey"`
	RoomNumber      string    `json:"room_number" gorm:"not null;uniqueIndex"`
	ConditionStatus string    `json:"condition_status" gorm:"not null;default:NORMAL"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }
