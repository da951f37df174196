package common

import "strconv"

// MetadataString retrieves a string value from equipment metadata with optional fallback keys.
// Keys are checked in order - first match wins.
func MetadataString(metadata map[string]string, keys ...string) (string, bool) {
	for _, key := range keys {
		if value, ok := metadata[key]; ok {
			return value, true
		}
	}
	return "", false
}

// MetadataInt retrieves a positive integer from equipment metadata.
// Values that do not parse or are not positive are skipped.
func MetadataInt(metadata map[string]string, keys ...string) (int, bool) {
	for _, key := range keys {
		valueStr, ok := metadata[key]
		if !ok {
			continue
		}
		if value, err := strconv.Atoi(valueStr); err == nil && value > 0 {
			return value, true
		}
	}
	return 0, false
}

// MetadataIntWithDefault retrieves a positive integer from metadata, or returns defaultValue.
func MetadataIntWithDefault(metadata map[string]string, defaultValue int, keys ...string) int {
	if value, ok := MetadataInt(metadata, keys...); ok {
		return value
	}
	return defaultValue
}
