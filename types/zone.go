package types

import (
	"fmt"
	"strings"
)

// Zone is one of the four Swedish electricity price areas (elområden).
type Zone string

const (
	ZoneSE1 Zone = "SE1" // Luleå
	ZoneSE2 Zone = "SE2" // Sundsvall
	ZoneSE3 Zone = "SE3" // Stockholm
	ZoneSE4 Zone = "SE4" // Malmö
)

var Zones = []Zone{ZoneSE1, ZoneSE2, ZoneSE3, ZoneSE4}

func ParseZone(s string) (Zone, error) {
	z := Zone(strings.ToUpper(strings.TrimSpace(s)))
	for _, valid := range Zones {
		if z == valid {
			return z, nil
		}
	}
	return "", fmt.Errorf("unknown price zone %q, expected one of SE1, SE2, SE3, SE4", s)
}

func (z Zone) String() string {
	return string(z)
}
