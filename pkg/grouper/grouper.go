// Package grouper partitions classified points into DeviceGroups sharing a
// device identifier derived from the instrument tag, and flags groups whose
// purpose requires co-located DI and DO channels.
package grouper

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"chassign/pkg/types"
)

// devicePrefixPatterns are tried in order; the first to match the
// uppercased tag supplies the device identifier.
var devicePrefixPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]+\d+`),
	regexp.MustCompile(`^\d+[A-Z]+`),
	regexp.MustCompile(`^[A-Z]+`),
}

// pairedDigitalKeywords mark a device group as needing co-located DI/DO
// channels — valve and handswitch tags/descriptions, in both languages.
var pairedDigitalKeywords = []string{"阀", "阀门", "VALVE", "XV", "HV", "PV", "CV"}

// Group partitions points into DeviceGroups, ordered so that paired-digital
// groups come first, then by descending point count, then by device_id
// lexicographic order.
func Group(points []types.Point) []types.DeviceGroup {
	order := make([]string, 0)
	byID := make(map[string][]types.Point)
	unknownCount := 0

	for _, p := range points {
		id := extractDeviceID(p.InstrumentTag)
		if id == "" {
			id = "UNKNOWN_" + strconv.Itoa(unknownCount)
			unknownCount++
		}
		if _, seen := byID[id]; !seen {
			order = append(order, id)
		}
		byID[id] = append(byID[id], p)
	}

	groups := make([]types.DeviceGroup, 0, len(order))
	for _, id := range order {
		pts := byID[id]
		groups = append(groups, types.DeviceGroup{
			DeviceID:        id,
			Points:          pts,
			IsPairedDigital: isPairedDigital(id, pts),
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		a, b := groups[i], groups[j]
		if a.IsPairedDigital != b.IsPairedDigital {
			return a.IsPairedDigital
		}
		if len(a.Points) != len(b.Points) {
			return len(a.Points) > len(b.Points)
		}
		return a.DeviceID < b.DeviceID
	})

	return groups
}

// extractDeviceID derives a device identifier from an instrument tag: the
// first matching prefix pattern, else the non-empty text before the first
// underscore, else the leading four characters.
func extractDeviceID(tag string) string {
	clean := strings.ToUpper(strings.TrimSpace(tag))
	if clean == "" {
		return ""
	}

	for _, pattern := range devicePrefixPatterns {
		if m := pattern.FindString(clean); m != "" {
			return m
		}
	}

	if i := strings.Index(clean, "_"); i > 0 {
		return clean[:i]
	}

	if len(clean) >= 4 {
		return clean[:4]
	}
	return clean
}

func isPairedDigital(deviceID string, points []types.Point) bool {
	upperID := strings.ToUpper(deviceID)
	for _, kw := range pairedDigitalKeywords {
		if strings.Contains(upperID, strings.ToUpper(kw)) {
			return true
		}
	}

	for _, p := range points {
		upperDesc := strings.ToUpper(p.Description)
		for _, kw := range pairedDigitalKeywords {
			if strings.Contains(upperDesc, strings.ToUpper(kw)) {
				return true
			}
		}
	}

	var hasDI, hasDO bool
	for _, p := range points {
		switch p.Kind {
		case types.KindDI:
			hasDI = true
		case types.KindDO:
			hasDO = true
		}
	}
	return hasDI && hasDO && len(points) >= 2 && len(points) <= 6
}
