package quiz

import (
	"os"
	"strings"
	"time"
)

// LocalTimezone returns the IANA name of the local zone when it can be
// determined, falling back to the zone abbreviation.
func LocalTimezone() string {
	if tz := os.Getenv("TZ"); tz != "" && !strings.HasPrefix(tz, ":") {
		return tz
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if i := strings.Index(target, "zoneinfo/"); i >= 0 {
			return target[i+len("zoneinfo/"):]
		}
	}
	name, _ := time.Now().Zone()
	return name
}
