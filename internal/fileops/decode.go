package fileops

import (
	"fmt"
	"regexp"
	"time"

	"jetpack/internal/domain"
	apperrors "jetpack/internal/errors"
)

// isoDatePattern matches the output of JSON date serializers:
// YYYY-MM-DDTHH:mm:ss[.fraction](Z|±HH:mm).
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`)

func decodeContent(path string, data []byte, mode domain.ReturnAs) (any, error) {
	switch mode {
	case domain.ReturnBuffer:
		return data, nil
	case domain.ReturnJSON:
		return decodeJSON(path, data, mode)
	case domain.ReturnJSONWithDates:
		value, err := decodeJSON(path, data, mode)
		if err != nil {
			return nil, err
		}
		revived, err := reviveDates(value)
		if err != nil {
			return nil, apperrors.NewDecodeError(path, mode.String(), err)
		}
		return revived, nil
	default:
		return string(data), nil
	}
}

func decodeJSON(path string, data []byte, mode domain.ReturnAs) (any, error) {
	var value any
	if err := DecodeJSON(data, &value); err != nil {
		return nil, apperrors.NewDecodeError(path, mode.String(), err)
	}
	return value, nil
}

// reviveDates replaces, at any depth, strings that look like ISO-8601
// timestamps with time.Time values. Containers are updated in place.
func reviveDates(value any) (any, error) {
	switch v := value.(type) {
	case string:
		if !isoDatePattern.MatchString(v) {
			return v, nil
		}
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", v, err)
		}
		return t, nil
	case map[string]any:
		for key, item := range v {
			revived, err := reviveDates(item)
			if err != nil {
				return nil, err
			}
			v[key] = revived
		}
		return v, nil
	case []any:
		for i, item := range v {
			revived, err := reviveDates(item)
			if err != nil {
				return nil, err
			}
			v[i] = revived
		}
		return v, nil
	default:
		return v, nil
	}
}
