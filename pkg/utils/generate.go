package utils

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateBookingCode creates a human readable booking reference.
// Format: PRK-YYYYMMDD-HHMMSS-RANDOM
func GenerateBookingCode(now time.Time) string {
	datePart := now.Format("20060102")
	timePart := now.Format("150405")
	randomPart := fmt.Sprintf("%04d", rand.IntN(10000))

	return fmt.Sprintf("PRK-%s-%s-%s", datePart, timePart, randomPart)
}
