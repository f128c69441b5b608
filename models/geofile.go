package models

import "time"

// Geofile is an uploaded geographic file (kml, gpx, shp, geojson) linked to a
// case, OB entry or evidence item. Coordinates is a JSON-encoded string.
type Geofile struct {
	ID          int       `json:"id" bson:"_id"`
	CaseID      *int      `json:"caseId" bson:"caseId"`
	OBID        *int      `json:"obId" bson:"obId"`
	EvidenceID  *int      `json:"evidenceId" bson:"evidenceId"`
	Filename    string    `json:"filename" bson:"filename"`
	Filepath    string    `json:"filepath" bson:"filepath"`
	FileType    string    `json:"fileType" bson:"fileType"`
	Coordinates string    `json:"coordinates" bson:"coordinates"`
	Address     string    `json:"address" bson:"address"`
	Description string    `json:"description" bson:"description"`
	UploadedBy  *int      `json:"uploadedBy" bson:"uploadedBy"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}
