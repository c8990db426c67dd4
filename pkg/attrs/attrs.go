// Package attrs provides helpers for slog-style key-value attribute slices.
package attrs

// ExtractString extracts a string value from a key-value attribute slice
// formatted as [key1, value1, key2, value2, ...]. Returns "" if the key is
// not found or the value is not a string.
func ExtractString(attrs []any, key string) string {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok {
			continue
		}
		if k == key {
			if v, ok := attrs[i+1].(string); ok {
				return v
			}
		}
	}
	return ""
}

// ExtractStringer extracts a value implementing fmt.Stringer-style String()
// for the given key, falling back to plain string values. Returns "" when
// the key is absent.
func ExtractStringer(attrs []any, key string) string {
	for i := 0; i < len(attrs)-1; i += 2 {
		k, ok := attrs[i].(string)
		if !ok || k != key {
			continue
		}
		switch v := attrs[i+1].(type) {
		case string:
			return v
		case interface{ String() string }:
			return v.String()
		}
	}
	return ""
}
