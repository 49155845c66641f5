// Package iata maps IATA airport codes to the IANA time zone of the airport.
// Coverage is intentionally partial: the table carries the airports the app's
// flight provider serves, and callers are expected to degrade gracefully on a
// miss rather than treat it as an error.
package iata

// Location describes where an airport is.
type Location struct {
	City string
	Tz   string
}

// TimeZone returns the IANA zone identifier for an airport code.
func TimeZone(code string) (string, bool) {
	loc, ok := Lookup(code)
	return loc.Tz, ok
}

// Lookup returns location data for an IATA airport code.
func Lookup(code string) (Location, bool) {
	switch code {
	case "ABQ":
		return Location{"Albuquerque", "America/Denver"}, true
	case "ACC":
		return Location{"Accra", "Africa/Accra"}, true
	case "ADD":
		return Location{"Addis Ababa", "Africa/Addis_Ababa"}, true
	case "ADL":
		return Location{"Adelaide", "Australia/Adelaide"}, true
	case "AKL":
		return Location{"Auckland", "Pacific/Auckland"}, true
	case "ALC":
		return Location{"Alicante", "Europe/Madrid"}, true
	case "AMM":
		return Location{"Amman", "Asia/Amman"}, true
	case "AMS":
		return Location{"Amsterdam", "Europe/Amsterdam"}, true
	case "ANC":
		return Location{"Anchorage", "America/Anchorage"}, true
	case "ARN":
		return Location{"Stockholm", "Europe/Stockholm"}, true
	case "ATH":
		return Location{"Athens", "Europe/Athens"}, true
	case "ATL":
		return Location{"Atlanta", "America/New_York"}, true
	case "AUH":
		return Location{"Abu Dhabi", "Asia/Dubai"}, true
	case "AUS":
		return Location{"Austin", "America/Chicago"}, true
	case "BAH":
		return Location{"Manama", "Asia/Bahrain"}, true
	case "BCN":
		return Location{"Barcelona", "Europe/Madrid"}, true
	case "BER":
		return Location{"Berlin", "Europe/Berlin"}, true
	case "BKK":
		return Location{"Bangkok", "Asia/Bangkok"}, true
	case "BLR":
		return Location{"Bengaluru", "Asia/Kolkata"}, true
	case "BNA":
		return Location{"Nashville", "America/Chicago"}, true
	case "BNE":
		return Location{"Brisbane", "Australia/Brisbane"}, true
	case "BOG":
		return Location{"Bogota", "America/Bogota"}, true
	case "BOM":
		return Location{"Mumbai", "Asia/Kolkata"}, true
	case "BOS":
		return Location{"Boston", "America/New_York"}, true
	case "BRU":
		return Location{"Brussels", "Europe/Brussels"}, true
	case "BUD":
		return Location{"Budapest", "Europe/Budapest"}, true
	case "BUF":
		return Location{"Buffalo", "America/New_York"}, true
	case "BWI":
		return Location{"Baltimore", "America/New_York"}, true
	case "CAI":
		return Location{"Cairo", "Africa/Cairo"}, true
	case "CAN":
		return Location{"Guangzhou", "Asia/Shanghai"}, true
	case "CCU":
		return Location{"Kolkata", "Asia/Kolkata"}, true
	case "CDG":
		return Location{"Paris", "Europe/Paris"}, true
	case "CGK":
		return Location{"Jakarta", "Asia/Jakarta"}, true
	case "CHC":
		return Location{"Christchurch", "Pacific/Auckland"}, true
	case "CLE":
		return Location{"Cleveland", "America/New_York"}, true
	case "CLT":
		return Location{"Charlotte", "America/New_York"}, true
	case "CMB":
		return Location{"Colombo", "Asia/Colombo"}, true
	case "CMH":
		return Location{"Columbus", "America/New_York"}, true
	case "CNS":
		return Location{"Cairns", "Australia/Brisbane"}, true
	case "CPH":
		return Location{"Copenhagen", "Europe/Copenhagen"}, true
	case "CPT":
		return Location{"Cape Town", "Africa/Johannesburg"}, true
	case "CUN":
		return Location{"Cancun", "America/Cancun"}, true
	case "CVG":
		return Location{"Cincinnati", "America/New_York"}, true
	case "DAL":
		return Location{"Dallas", "America/Chicago"}, true
	case "DCA":
		return Location{"Washington", "America/New_York"}, true
	case "DEL":
		return Location{"New Delhi", "Asia/Kolkata"}, true
	case "DEN":
		return Location{"Denver", "America/Denver"}, true
	case "DFW":
		return Location{"Dallas-Fort Worth", "America/Chicago"}, true
	case "DOH":
		return Location{"Doha", "Asia/Qatar"}, true
	case "DPS":
		return Location{"Denpasar", "Asia/Makassar"}, true
	case "DTW":
		return Location{"Detroit", "America/New_York"}, true
	case "DUB":
		return Location{"Dublin", "Europe/Dublin"}, true
	case "DUS":
		return Location{"Dusseldorf", "Europe/Berlin"}, true
	case "DXB":
		return Location{"Dubai", "Asia/Dubai"}, true
	case "EDI":
		return Location{"Edinburgh", "Europe/London"}, true
	case "EWR":
		return Location{"Newark", "America/New_York"}, true
	case "EZE":
		return Location{"Buenos Aires", "America/Argentina/Buenos_Aires"}, true
	case "FCO":
		return Location{"Rome", "Europe/Rome"}, true
	case "FLL":
		return Location{"Fort Lauderdale", "America/New_York"}, true
	case "FRA":
		return Location{"Frankfurt", "Europe/Berlin"}, true
	case "GDL":
		return Location{"Guadalajara", "America/Mexico_City"}, true
	case "GIG":
		return Location{"Rio de Janeiro", "America/Sao_Paulo"}, true
	case "GLA":
		return Location{"Glasgow", "Europe/London"}, true
	case "GRU":
		return Location{"Sao Paulo", "America/Sao_Paulo"}, true
	case "GVA":
		return Location{"Geneva", "Europe/Zurich"}, true
	case "HAM":
		return Location{"Hamburg", "Europe/Berlin"}, true
	case "HAN":
		return Location{"Hanoi", "Asia/Ho_Chi_Minh"}, true
	case "HEL":
		return Location{"Helsinki", "Europe/Helsinki"}, true
	case "HKG":
		return Location{"Hong Kong", "Asia/Hong_Kong"}, true
	case "HND":
		return Location{"Tokyo", "Asia/Tokyo"}, true
	case "HNL":
		return Location{"Honolulu", "Pacific/Honolulu"}, true
	case "IAD":
		return Location{"Washington", "America/New_York"}, true
	case "IAH":
		return Location{"Houston", "America/Chicago"}, true
	case "ICN":
		return Location{"Seoul", "Asia/Seoul"}, true
	case "IKA":
		return Location{"Tehran", "Asia/Tehran"}, true
	case "IST":
		return Location{"Istanbul", "Europe/Istanbul"}, true
	case "JED":
		return Location{"Jeddah", "Asia/Riyadh"}, true
	case "JFK":
		return Location{"New York", "America/New_York"}, true
	case "JNB":
		return Location{"Johannesburg", "Africa/Johannesburg"}, true
	case "KEF":
		return Location{"Reykjavik", "Atlantic/Reykjavik"}, true
	case "KIX":
		return Location{"Osaka", "Asia/Tokyo"}, true
	case "KTM":
		return Location{"Kathmandu", "Asia/Kathmandu"}, true
	case "KUL":
		return Location{"Kuala Lumpur", "Asia/Kuala_Lumpur"}, true
	case "LAS":
		return Location{"Las Vegas", "America/Los_Angeles"}, true
	case "LAX":
		return Location{"Los Angeles", "America/Los_Angeles"}, true
	case "LGA":
		return Location{"New York", "America/New_York"}, true
	case "LGW":
		return Location{"London", "Europe/London"}, true
	case "LHR":
		return Location{"London", "Europe/London"}, true
	case "LIM":
		return Location{"Lima", "America/Lima"}, true
	case "LIS":
		return Location{"Lisbon", "Europe/Lisbon"}, true
	case "LOS":
		return Location{"Lagos", "Africa/Lagos"}, true
	case "LYS":
		return Location{"Lyon", "Europe/Paris"}, true
	case "MAD":
		return Location{"Madrid", "Europe/Madrid"}, true
	case "MAN":
		return Location{"Manchester", "Europe/London"}, true
	case "MCO":
		return Location{"Orlando", "America/New_York"}, true
	case "MDW":
		return Location{"Chicago", "America/Chicago"}, true
	case "MEL":
		return Location{"Melbourne", "Australia/Melbourne"}, true
	case "MEX":
		return Location{"Mexico City", "America/Mexico_City"}, true
	case "MIA":
		return Location{"Miami", "America/New_York"}, true
	case "MNL":
		return Location{"Manila", "Asia/Manila"}, true
	case "MSP":
		return Location{"Minneapolis", "America/Chicago"}, true
	case "MSY":
		return Location{"New Orleans", "America/Chicago"}, true
	case "MUC":
		return Location{"Munich", "Europe/Berlin"}, true
	case "MXP":
		return Location{"Milan", "Europe/Rome"}, true
	case "NBO":
		return Location{"Nairobi", "Africa/Nairobi"}, true
	case "NCE":
		return Location{"Nice", "Europe/Paris"}, true
	case "NRT":
		return Location{"Tokyo", "Asia/Tokyo"}, true
	case "OAK":
		return Location{"Oakland", "America/Los_Angeles"}, true
	case "OPO":
		return Location{"Porto", "Europe/Lisbon"}, true
	case "ORD":
		return Location{"Chicago", "America/Chicago"}, true
	case "OSL":
		return Location{"Oslo", "Europe/Oslo"}, true
	case "OTP":
		return Location{"Bucharest", "Europe/Bucharest"}, true
	case "PDX":
		return Location{"Portland", "America/Los_Angeles"}, true
	case "PEK":
		return Location{"Beijing", "Asia/Shanghai"}, true
	case "PER":
		return Location{"Perth", "Australia/Perth"}, true
	case "PHL":
		return Location{"Philadelphia", "America/New_York"}, true
	case "PHX":
		return Location{"Phoenix", "America/Phoenix"}, true
	case "PIT":
		return Location{"Pittsburgh", "America/New_York"}, true
	case "PRG":
		return Location{"Prague", "Europe/Prague"}, true
	case "PTY":
		return Location{"Panama City", "America/Panama"}, true
	case "PVG":
		return Location{"Shanghai", "Asia/Shanghai"}, true
	case "RDU":
		return Location{"Raleigh-Durham", "America/New_York"}, true
	case "RGN":
		return Location{"Yangon", "Asia/Yangon"}, true
	case "RSW":
		return Location{"Fort Myers", "America/New_York"}, true
	case "SAN":
		return Location{"San Diego", "America/Los_Angeles"}, true
	case "SAT":
		return Location{"San Antonio", "America/Chicago"}, true
	case "SCL":
		return Location{"Santiago", "America/Santiago"}, true
	case "SEA":
		return Location{"Seattle", "America/Los_Angeles"}, true
	case "SFO":
		return Location{"San Francisco", "America/Los_Angeles"}, true
	case "SGN":
		return Location{"Ho Chi Minh City", "Asia/Ho_Chi_Minh"}, true
	case "SIN":
		return Location{"Singapore", "Asia/Singapore"}, true
	case "SJC":
		return Location{"San Jose", "America/Los_Angeles"}, true
	case "SJU":
		return Location{"San Juan", "America/Puerto_Rico"}, true
	case "SLC":
		return Location{"Salt Lake City", "America/Denver"}, true
	case "SMF":
		return Location{"Sacramento", "America/Los_Angeles"}, true
	case "STL":
		return Location{"St. Louis", "America/Chicago"}, true
	case "SVO":
		return Location{"Moscow", "Europe/Moscow"}, true
	case "SYD":
		return Location{"Sydney", "Australia/Sydney"}, true
	case "TLV":
		return Location{"Tel Aviv", "Asia/Jerusalem"}, true
	case "TPA":
		return Location{"Tampa", "America/New_York"}, true
	case "TPE":
		return Location{"Taipei", "Asia/Taipei"}, true
	case "TXL":
		return Location{"Berlin", "Europe/Berlin"}, true
	case "VIE":
		return Location{"Vienna", "Europe/Vienna"}, true
	case "WAW":
		return Location{"Warsaw", "Europe/Warsaw"}, true
	case "YEG":
		return Location{"Edmonton", "America/Edmonton"}, true
	case "YOW":
		return Location{"Ottawa", "America/Toronto"}, true
	case "YUL":
		return Location{"Montreal", "America/Toronto"}, true
	case "YVR":
		return Location{"Vancouver", "America/Vancouver"}, true
	case "YYC":
		return Location{"Calgary", "America/Edmonton"}, true
	case "YYZ":
		return Location{"Toronto", "America/Toronto"}, true
	case "ZRH":
		return Location{"Zurich", "Europe/Zurich"}, true
	}
	return Location{}, false
}
