package models

import "time"

// Case is a formal investigation record. The case number is derived from the
// id at creation time (CASE-<year>-<3 digit id>) and never recomputed.
type Case struct {
	ID                int       `json:"id" bson:"_id"`
	CaseNumber        string    `json:"caseNumber" bson:"caseNumber"`
	Title             string    `json:"title" bson:"title"`
	Description       string    `json:"description" bson:"description"`
	Type              string    `json:"type" bson:"type"`
	Status            string    `json:"status" bson:"status"`     // Open, In Progress, Pending, Closed, Archived
	Priority          string    `json:"priority" bson:"priority"` // Low, Medium, High, Critical
	Location          string    `json:"location" bson:"location"`
	AssignedOfficer   string    `json:"assignedOfficer" bson:"assignedOfficer"`
	AssignedOfficerID *int      `json:"assignedOfficerId" bson:"assignedOfficerId"`
	IncidentDate      string    `json:"incidentDate" bson:"incidentDate"`
	CreatedByID       int       `json:"createdById" bson:"createdById"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}
