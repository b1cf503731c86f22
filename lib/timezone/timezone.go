package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic(err)
	}
}

// force timezone to be in Moscow because sometimes our servers
// end up in another region which will cause disturbances when
// manipulating dates based on <time.Time>.Year()/Month()/Day()/Hour()/...
func Now() time.Time {
	return time.Now().In(Location)
}

// GetCurrentWeek returns the monday and sunday enclosing now,
// the portal counts schedule weeks from monday.
func GetCurrentWeek(now time.Time) (start time.Time, stop time.Time) {
	weekday := (int(now.Weekday()) + 6) % 7
	start = now.AddDate(0, 0, -weekday)
	stop = start.AddDate(0, 0, 6)
	return start, stop
}
