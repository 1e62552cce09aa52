package utils

import (
	"strconv"
	"strings"

	"parking-marketplace/pkg/apperror"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseLimitOffset reads limit and offset query values. Empty values fall back
// to DefaultLimit and zero; anything else out of range is a validation error.
func ParseLimitOffset(rawLimit, rawOffset string) (int, int, error) {
	limit := DefaultLimit
	if s := strings.TrimSpace(rawLimit); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > MaxLimit {
			return 0, 0, apperror.Validationf("limit must be an integer between 1 and %d", MaxLimit)
		}
		limit = n
	}

	offset := 0
	if s := strings.TrimSpace(rawOffset); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0, 0, apperror.Validation("offset must be a non-negative integer")
		}
		offset = n
	}

	return limit, offset, nil
}

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
