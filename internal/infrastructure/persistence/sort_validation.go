package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes orderDir to ASC or DESC, falling back to def
// for anything else.
func ValidateSortOrder(orderDir, def string) string {
	switch strings.ToUpper(strings.TrimSpace(orderDir)) {
	case "ASC":
		return "ASC"
	case "DESC":
		return "DESC"
	}
	return def
}

// ValidateSortField returns sortField if whitelisted, otherwise defaultField
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// SocietySortFields are the societies columns a listing may order by
var SocietySortFields = map[string]bool{
	"name":       true,
	"type":       true,
	"location":   true,
	"created_at": true,
	"updated_at": true,
}
