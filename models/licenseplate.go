package models

import "time"

// LicensePlate is a registered plate record with owner identity details.
// OwnerImage holds a data URI when set.
type LicensePlate struct {
	ID             int       `json:"id" bson:"_id"`
	PlateNumber    string    `json:"plateNumber" bson:"plateNumber"`
	OwnerName      string    `json:"ownerName" bson:"ownerName"`
	FatherName     string    `json:"fatherName" bson:"fatherName"`
	MotherName     string    `json:"motherName" bson:"motherName"`
	IDNumber       string    `json:"idNumber" bson:"idNumber"`
	PassportNumber string    `json:"passportNumber" bson:"passportNumber"`
	OwnerImage     *string   `json:"ownerImage" bson:"ownerImage"`
	AddedByID      *int      `json:"addedById" bson:"addedById"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}
