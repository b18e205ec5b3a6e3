package clock

import (
	"bufio"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-i2p/logger"
)

//go:embed zones.txt
var zonesFile string

var continentPools = map[string]string{
	"AF": "africa",
	"AN": "antarctica",
	"AS": "asia",
	"EU": "europe",
	"NA": "north-america",
	"OC": "oceania",
	"SA": "south-america",
}

var (
	zonesOnce        sync.Once
	timezoneCountry  map[string]string
	countryContinent map[string]string
)

func loadZones() {
	zonesOnce.Do(func() {
		timezoneCountry = make(map[string]string)
		countryContinent = make(map[string]string)
		scanner := bufio.NewScanner(strings.NewReader(zonesFile))
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.Split(line, ",")
			if len(parts) != 3 {
				continue
			}
			cc := strings.ToLower(strings.TrimSpace(parts[1]))
			timezoneCountry[strings.TrimSpace(parts[0])] = cc
			countryContinent[cc] = strings.ToUpper(strings.TrimSpace(parts[2]))
		}
	})
}

// lookupCountryByTimezone returns the lowercase country code of an IANA
// timezone, or "".
func lookupCountryByTimezone(tzName string) string {
	loadZones()
	return timezoneCountry[tzName]
}

// DetectCountry guesses the local country from the system timezone. It
// makes no network calls and returns "" when the timezone is unknown.
func DetectCountry() string {
	tzName := detectIANATimezone()
	if tzName == "" {
		log.Debug("Could not detect IANA timezone for NTP pool selection")
		return ""
	}
	cc := lookupCountryByTimezone(tzName)
	log.WithFields(logger.Fields{
		"at":       "clock.DetectCountry",
		"timezone": tzName,
		"country":  cc,
	}).Debug("detected country for NTP pool selection")
	return cc
}

// PriorityServers returns the country pool servers for cc followed by the
// continent pool servers. It returns nil for an empty or anonymous code.
func PriorityServers(cc string) []string {
	cc = strings.ToLower(strings.TrimSpace(cc))
	if cc == "" || cc == "a1" || cc == "a2" {
		return nil
	}
	servers := poolServers(cc)
	loadZones()
	if pool, ok := continentPools[countryContinent[cc]]; ok {
		servers = append(servers, poolServers(pool)...)
	}
	return servers
}

func poolServers(zone string) []string {
	return []string{
		fmt.Sprintf("0.%s.pool.ntp.org", zone),
		fmt.Sprintf("1.%s.pool.ntp.org", zone),
		fmt.Sprintf("2.%s.pool.ntp.org", zone),
	}
}

// detectIANATimezone tries $TZ, /etc/timezone, the /etc/localtime link and
// finally the time package.
func detectIANATimezone() string {
	if tz := os.Getenv("TZ"); tz != "" {
		if name := extractIANAName(strings.TrimPrefix(tz, ":")); name != "" {
			return name
		}
	}
	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		if name := strings.TrimSpace(string(data)); name != "" {
			return name
		}
	}
	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if name := extractIANAName(target); name != "" {
			return name
		}
	}
	if name := time.Now().Location().String(); strings.Contains(name, "/") {
		return name
	}
	return ""
}

// extractIANAName returns the zone name of a zoneinfo path or a bare
// "Area/Location" name.
func extractIANAName(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "zoneinfo/"); idx != -1 {
		return s[idx+len("zoneinfo/"):]
	}
	if s != "" && !strings.HasPrefix(s, "/") && strings.Contains(s, "/") {
		return s
	}
	return ""
}
