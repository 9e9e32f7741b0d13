package system

import "time"

type TimeGenerator struct{}

func (g *TimeGenerator) Now() time.Time {
	return time.Now().UTC()
}
