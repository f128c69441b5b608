package models

import "time"

// OBEntry is an occurrence-book entry, the chronological log of reported
// incidents kept independently of formal case status. OB numbers follow
// OB/<year>/<4 digit id>.
type OBEntry struct {
	ID                 int       `json:"id" bson:"_id"`
	OBNumber           string    `json:"obNumber" bson:"obNumber"`
	DateTime           time.Time `json:"dateTime" bson:"dateTime"`
	Type               string    `json:"type" bson:"type"`
	Description        string    `json:"description" bson:"description"`
	ReportedBy         string    `json:"reportedBy" bson:"reportedBy"`
	RecordingOfficerID *int      `json:"recordingOfficerId" bson:"recordingOfficerId"`
	Location           string    `json:"location" bson:"location"`
	Status             string    `json:"status" bson:"status"`
	CreatedAt          time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt" bson:"updatedAt"`
}
