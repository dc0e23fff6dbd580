package web

import (
	"strconv"
	"time"
)

func itoa(value int) string {
	return strconv.Itoa(value)
}

func formatKickoff(value time.Time, loc *time.Location) string {
	if value.IsZero() {
		return "-"
	}
	if loc != nil {
		value = value.In(loc)
	}
	return value.Format("02/01/2006 15:04")
}
