package cookies

import "time"

// windowsEpochOffsetSeconds is the number of seconds between the Windows NT
// epoch (1601-01-01 00:00:00 UTC) and the Unix epoch (1970-01-01 00:00:00 UTC).
const windowsEpochOffsetSeconds int64 = 11_644_473_600

const fileTimeTicksPerSecond = 10_000_000

// fileTimeToTime converts a Windows FILETIME (100ns ticks since 1601-01-01)
// to a UTC time.
func fileTimeToTime(ticks int64) time.Time {
	sec := ticks/fileTimeTicksPerSecond - windowsEpochOffsetSeconds
	nsec := (ticks % fileTimeTicksPerSecond) * 100
	return time.Unix(sec, nsec).UTC()
}

// chromeTimeToTime converts a Chrome timestamp (microseconds since
// 1601-01-01) to a UTC time. Zero means a session cookie and maps to the zero
// time.
func chromeTimeToTime(chromeUSec int64) time.Time {
	if chromeUSec == 0 {
		return time.Time{}
	}
	sec := chromeUSec/1_000_000 - windowsEpochOffsetSeconds
	nsec := (chromeUSec % 1_000_000) * 1000
	return time.Unix(sec, nsec).UTC()
}
