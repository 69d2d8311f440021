package blob

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Families partition the store's on-disk layout. Every generated name lives
// under exactly one of these prefixes.
const (
	FamilyRestaurants = "restaurants"
	FamilyPhotography = "photography"
)

// NewName generates a collision-resistant storage name for one upload:
// family prefix, millisecond timestamp, uuid fragment, file extension. The
// timestamp keeps directory listings roughly chronological; the uuid fragment
// removes the collision window between concurrent requests.
func NewName(family string, ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	return fmt.Sprintf("%s/%d-%s%s", family, time.Now().UnixMilli(), uuid.New().String()[:8], ext)
}
