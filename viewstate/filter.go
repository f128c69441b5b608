package viewstate

import (
	"strings"

	"github.com/bluelinehq/police-records-api/models"
)

// containsFold reports whether any of the fields contains term,
// case-insensitively. An empty term matches everything.
func containsFold(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// equalsOrAll reports whether value matches want, where an empty or "all"
// want imposes no constraint.
func equalsOrAll(want, value string) bool {
	return want == "" || want == "all" || want == value
}

// CaseFilter narrows a case list the way the case screen's search box and
// dropdowns do.
type CaseFilter struct {
	Search   string
	Status   string
	Priority string
}

// Match reports whether c passes the filter.
func (f CaseFilter) Match(c models.Case) bool {
	return containsFold(f.Search, c.CaseNumber, c.Title, c.Description, c.Location, c.AssignedOfficer) &&
		equalsOrAll(f.Status, c.Status) &&
		equalsOrAll(f.Priority, c.Priority)
}

// FilterCases returns the cases passing f, preserving order.
func FilterCases(cases []models.Case, f CaseFilter) []models.Case {
	out := []models.Case{}
	for _, c := range cases {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// OBFilter narrows the occurrence book.
type OBFilter struct {
	Search string
	Status string
	Type   string
}

// Match reports whether e passes the filter.
func (f OBFilter) Match(e models.OBEntry) bool {
	return containsFold(f.Search, e.OBNumber, e.Description, e.ReportedBy, e.Location) &&
		equalsOrAll(f.Status, e.Status) &&
		equalsOrAll(f.Type, e.Type)
}

// FilterOBEntries returns the entries passing f, preserving order.
func FilterOBEntries(entries []models.OBEntry, f OBFilter) []models.OBEntry {
	out := []models.OBEntry{}
	for _, e := range entries {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// PlateFilter narrows the plate registry; the search box is the only
// control on that screen.
type PlateFilter struct {
	Search string
}

// Match reports whether p passes the filter.
func (f PlateFilter) Match(p models.LicensePlate) bool {
	return containsFold(f.Search, p.PlateNumber, p.OwnerName, p.IDNumber)
}

// FilterPlates returns the plates passing f, preserving order.
func FilterPlates(plates []models.LicensePlate, f PlateFilter) []models.LicensePlate {
	out := []models.LicensePlate{}
	for _, p := range plates {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

// EvidenceFilter narrows the evidence log.
type EvidenceFilter struct {
	Search string
	Status string
	Type   string
}

// Match reports whether e passes the filter.
func (f EvidenceFilter) Match(e models.Evidence) bool {
	return containsFold(f.Search, e.EvidenceNumber, e.Description, e.Location) &&
		equalsOrAll(f.Status, e.Status) &&
		equalsOrAll(f.Type, e.Type)
}

// FilterEvidence returns the items passing f, preserving order.
func FilterEvidence(items []models.Evidence, f EvidenceFilter) []models.Evidence {
	out := []models.Evidence{}
	for _, e := range items {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	return out
}

// GeofileFilter narrows the geofile list.
type GeofileFilter struct {
	Search   string
	FileType string
}

// Match reports whether g passes the filter.
func (f GeofileFilter) Match(g models.Geofile) bool {
	return containsFold(f.Search, g.Filename, g.Description, g.Address) &&
		equalsOrAll(f.FileType, g.FileType)
}

// FilterGeofiles returns the files passing f, preserving order.
func FilterGeofiles(files []models.Geofile, f GeofileFilter) []models.Geofile {
	out := []models.Geofile{}
	for _, g := range files {
		if f.Match(g) {
			out = append(out, g)
		}
	}
	return out
}

// ReportFilter narrows the reports list.
type ReportFilter struct {
	Search string
	Status string
	Type   string
}

// Match reports whether r passes the filter.
func (f ReportFilter) Match(r models.Report) bool {
	return containsFold(f.Search, r.ReportNumber, r.Title, r.Content) &&
		equalsOrAll(f.Status, r.Status) &&
		equalsOrAll(f.Type, r.Type)
}

// FilterReports returns the reports passing f, preserving order.
func FilterReports(reports []models.Report, f ReportFilter) []models.Report {
	out := []models.Report{}
	for _, r := range reports {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
