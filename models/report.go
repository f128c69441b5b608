package models

import "time"

// Report is a generated or requested report document. Report numbers follow
// RPT-<year>-<4 digit id>.
type Report struct {
	ID           int       `json:"id" bson:"_id"`
	ReportNumber string    `json:"reportNumber" bson:"reportNumber"`
	Type         string    `json:"type" bson:"type"` // warranty, incident, evidence, case_summary
	CaseID       *int      `json:"caseId" bson:"caseId"`
	OBID         *int      `json:"obId" bson:"obId"`
	EvidenceID   *int      `json:"evidenceId" bson:"evidenceId"`
	Title        string    `json:"title" bson:"title"`
	Content      string    `json:"content" bson:"content"`
	RequestedBy  *int      `json:"requestedBy" bson:"requestedBy"`
	Status       string    `json:"status" bson:"status"`     // pending, approved, completed, rejected
	Priority     string    `json:"priority" bson:"priority"` // low, medium, high, urgent
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
