package geolite

import (
	"net"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/oschwald/geoip2-golang"

	"heron/internal/config"
)

var (
	countryDB *geoip2.Reader
	openOnce  sync.Once
)

// CountryCode resolves the ISO country of an address for login bookkeeping.
// Returns "" when no database is configured or the address is unknown; the
// lookup is decorative and must never fail a login.
func CountryCode(address string) string {
	openOnce.Do(openDatabase)

	if countryDB == nil {
		return ""
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return ""
	}

	record, err := countryDB.Country(ip)
	if err != nil {
		return ""
	}
	return record.Country.IsoCode
}

func openDatabase() {
	path := config.GetConfig().GeoIP.DatabasePath
	if path == "" {
		return
	}

	db, err := geoip2.Open(path)
	if err != nil {
		log.Warn("GeoIP database unavailable, login countries will be empty", "path", path, "error", err)
		return
	}
	countryDB = db
}
