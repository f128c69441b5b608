package models

import "time"

// Evidence is an item in the evidence log, optionally linked to a case or OB
// entry. Evidence numbers follow EV-<year>-<4 digit id>. CollectedAt is kept
// as the caller-submitted string, matching the other free-form date fields.
type Evidence struct {
	ID             int       `json:"id" bson:"_id"`
	EvidenceNumber string    `json:"evidenceNumber" bson:"evidenceNumber"`
	CaseID         *int      `json:"caseId" bson:"caseId"`
	OBID           *int      `json:"obId" bson:"obId"`
	Type           string    `json:"type" bson:"type"` // physical, digital, document, photo, video
	Description    string    `json:"description" bson:"description"`
	Location       string    `json:"location" bson:"location"`
	ChainOfCustody string    `json:"chain_of_custody" bson:"chainOfCustody"`
	Status         string    `json:"status" bson:"status"` // collected, analyzed, stored, disposed
	CollectedBy    *int      `json:"collectedBy" bson:"collectedBy"`
	CollectedAt    string    `json:"collectedAt" bson:"collectedAt"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt" bson:"updatedAt"`
}
