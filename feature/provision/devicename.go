package provision

import (
	"fmt"
	"os"
	"time"
)

// DefaultDeviceName uses the system hostname, so a machine provisions under
// a stable identity across runs. When the hostname is unavailable it falls
// back to a timestamped name derived from the target hierarchy.
func DefaultDeviceName(country, state string) string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fmt.Sprintf("device_%s_%s_%s", country, state, time.Now().Format("20060102_150405"))
}
