package model

import "time"

type Employee struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	FullName          string    `gorm:"size:128;not null" json:"fullName"`
	DateOfBirth       time.Time `gorm:"type:date;not null" json:"dateOfBirth"`
	Email             string    `gorm:"size:128;not null" json:"email"`
	Department        string    `gorm:"size:64;not null;index" json:"department"`
	PhoneNumber       string    `gorm:"size:16;not null" json:"phoneNumber"`
	Designation       string    `gorm:"size:64;not null;index" json:"designation"`
	Gender            string    `gorm:"size:16;not null;index" json:"gender"`
	PhotoPath         string    `gorm:"size:255;not null" json:"photoPath"`
	PhotoOriginalName string    `gorm:"size:255;not null" json:"photoOriginalName"`
	CreatedAt         time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
