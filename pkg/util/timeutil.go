package util

import "time"

// NowUTC is the default clock for services that accept an injected one.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// LoadLocation resolves an IANA zone name, falling back to a fixed UTC+8
// offset when the zone database is unavailable. An empty name yields UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone(name, 8*60*60)
	}
	return loc
}
