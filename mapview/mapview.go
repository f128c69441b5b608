// Package mapview renders the fleet tracking map as a standalone SVG
// document. Coordinates are projected from WGS84 lng/lat into a fixed
// 100x100 viewport covering the San Francisco patrol district
// (longitude -122.5 to -122.4, latitude 37.7 to 37.8).
package mapview

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bluelinehq/police-records-api/models"
)

const (
	originLng = -122.5
	originLat = 37.8
	spanDeg   = 0.1
	viewSize  = 100.0
)

var statusColors = map[string]string{
	"available":      "#2ecc71",
	"on_patrol":      "#3498db",
	"responding":     "#e74c3c",
	"out_of_service": "#95a5a6",
}

const defaultColor = "#7f8c8d"

func statusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return defaultColor
}

// project maps a [lng, lat] pair onto the viewport. North is up, so
// latitude is inverted.
func project(lng, lat float64) (x, y float64) {
	x = ((lng - originLng) / spanDeg) * viewSize
	y = ((originLat - lat) / spanDeg) * viewSize
	return x, y
}

// parsePoint decodes a JSON-encoded [lng, lat] pair. Malformed or
// short payloads return ok=false; the caller skips the marker.
func parsePoint(raw string) (lng, lat float64, ok bool) {
	var coords []float64
	if err := json.Unmarshal([]byte(raw), &coords); err != nil || len(coords) < 2 {
		return 0, 0, false
	}
	return coords[0], coords[1], true
}

// parsePolygon decodes a JSON-encoded polygon of [lng, lat] pairs.
// Fewer than three vertices cannot enclose an area and return nil.
func parsePolygon(raw string) [][]float64 {
	var coords [][]float64
	if err := json.Unmarshal([]byte(raw), &coords); err != nil {
		return nil
	}
	if len(coords) < 3 {
		return nil
	}
	for _, c := range coords {
		if len(c) < 2 {
			return nil
		}
	}
	return coords
}

// areaPath builds a closed SVG path from a patrol area polygon.
func areaPath(coords [][]float64) string {
	var b strings.Builder
	for i, c := range coords {
		x, y := project(c[0], c[1])
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s %s %s ", cmd, fmtCoord(x), fmtCoord(y))
	}
	b.WriteString("Z")
	return b.String()
}

// fmtCoord trims float formatting so the output stays readable.
func fmtCoord(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}

// Render produces the full SVG document for the fleet map. Vehicles
// with missing or malformed locations are drawn without a marker;
// patrol areas are included only when showPatrolAreas is set.
func Render(vehicles []models.PoliceVehicle, showPatrolAreas bool) string {
	var b strings.Builder

	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100" preserveAspectRatio="xMidYMid slice">`)
	b.WriteString(`<rect width="100" height="100" fill="#1a1f2e"/>`)
	b.WriteString(`<defs><pattern id="grid" width="10" height="10" patternUnits="userSpaceOnUse">`)
	b.WriteString(`<path d="M 10 0 L 0 0 0 10" fill="none" stroke="#2c3e50" stroke-width="0.5" opacity="0.3"/>`)
	b.WriteString(`</pattern></defs>`)
	b.WriteString(`<rect width="100" height="100" fill="url(#grid)"/>`)

	if showPatrolAreas {
		for _, v := range vehicles {
			coords := parsePolygon(v.AssignedArea)
			if coords == nil {
				continue
			}
			color := statusColor(v.Status)
			lx, ly := project(coords[0][0], coords[0][1])
			fmt.Fprintf(&b, `<g><path d="%s" fill="%s" fill-opacity="0.1" stroke="%s" stroke-width="0.5" stroke-dasharray="2,2"/>`,
				areaPath(coords), color, color)
			fmt.Fprintf(&b, `<text x="%s" y="%s" fill="%s" font-size="3" text-anchor="middle">%s</text></g>`,
				fmtCoord(lx), fmtCoord(ly), color, escapeText(v.VehicleID))
		}
	}

	for _, v := range vehicles {
		lng, lat, ok := parsePoint(v.CurrentLocation)
		if !ok {
			continue
		}
		x, y := project(lng, lat)
		color := statusColor(v.Status)
		fmt.Fprintf(&b, `<g transform="translate(%s, %s)">`, fmtCoord(x), fmtCoord(y))
		fmt.Fprintf(&b, `<circle r="2" fill="%s" stroke="#fff" stroke-width="0.5"/>`, color)
		fmt.Fprintf(&b, `<circle r="3" fill="transparent" stroke="%s" stroke-width="0.3" opacity="0.6"/>`, color)
		b.WriteString(`</g>`)
	}

	b.WriteString(`</svg>`)
	return b.String()
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
