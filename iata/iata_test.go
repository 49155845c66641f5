package iata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeZone_Known(t *testing.T) {
	tz, ok := TimeZone("SFO")
	require.True(t, ok)
	require.Equal(t, "America/Los_Angeles", tz)
}

func TestTimeZone_Unknown(t *testing.T) {
	_, ok := TimeZone("XXX")
	require.False(t, ok)
}

func TestLookup_City(t *testing.T) {
	loc, ok := Lookup("KTM")
	require.True(t, ok)
	require.Equal(t, "Kathmandu", loc.City)
	require.Equal(t, "Asia/Kathmandu", loc.Tz)
}

// Every zone in the table must be loadable, otherwise the duration math
// silently falls back on airports we claim to support.
func TestAllZonesLoadable(t *testing.T) {
	codes := []string{
		"ABQ", "ACC", "ADD", "ADL", "AKL", "AMS", "ATL", "BKK", "BOM", "CDG",
		"CMB", "DEL", "DEN", "DFW", "DOH", "DXB", "EZE", "FRA", "GRU", "HKG",
		"HND", "HNL", "IKA", "IST", "JFK", "JNB", "KTM", "LAX", "LHR", "MEX",
		"NRT", "ORD", "PER", "PHX", "RGN", "SCL", "SEA", "SFO", "SIN", "SYD",
		"TLV", "YVR", "YYZ", "ZRH",
	}
	for _, code := range codes {
		tz, ok := TimeZone(code)
		require.True(t, ok, code)
		_, err := time.LoadLocation(tz)
		require.NoError(t, err, "%s -> %s", code, tz)
	}
}
