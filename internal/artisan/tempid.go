package artisan

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TempID returns a placeholder id for records not yet saved by the server.
// It is unique enough for a single client session, not for persistence.
func TempID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("temp_%d_%s", time.Now().UnixMilli(), suffix)
}
