package session

import (
	"fmt"
	"time"
)

// FormatElapsed renders d as mm:ss, truncating to whole seconds. Minutes
// are not wrapped into hours.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
