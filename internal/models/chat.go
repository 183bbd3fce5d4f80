package models

import (
	"gorm.io/datatypes"
)

const GuestMaxLength = 50

// Chat is a single coffee chat: who it was with, when, and what was discussed.
type Chat struct {
	ID       uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Guest    string         `gorm:"size:50;not null" json:"guest"`
	ChatDate datatypes.Date `gorm:"not null" json:"chat_date"`
	Notes    string         `gorm:"type:text;not null" json:"notes"`
}

// ChatChanges holds the fields of an update; nil fields are left untouched.
type ChatChanges struct {
	Guest    *string
	ChatDate *datatypes.Date
	Notes    *string
}

func (c ChatChanges) Apply(chat *Chat) {
	if c.Guest != nil {
		chat.Guest = *c.Guest
	}
	if c.ChatDate != nil {
		chat.ChatDate = *c.ChatDate
	}
	if c.Notes != nil {
		chat.Notes = *c.Notes
	}
}
