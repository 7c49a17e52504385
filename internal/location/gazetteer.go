package location

const (
	bahrain = "Bahrain"
	saudi   = "Saudi Arabia"
	uae     = "United Arab Emirates"
	qatar   = "Qatar"
	kuwait  = "Kuwait"
	oman    = "Oman"
	egypt   = "Egypt"
	jordan  = "Jordan"
	lebanon = "Lebanon"
	turkey  = "Turkey"
	uk      = "United Kingdom"
	france  = "France"
	usa     = "United States"
	india   = "India"
	spain   = "Spain"
	italy   = "Italy"
	germany = "Germany"
)

var defaultCountries = map[string]string{
	"bahrain":              bahrain,
	"kingdom of bahrain":   bahrain,
	"saudi arabia":         saudi,
	"ksa":                  saudi,
	"saudi":                saudi,
	"united arab emirates": uae,
	"uae":                  uae,
	"u.a.e":                uae,
	"qatar":                qatar,
	"kuwait":               kuwait,
	"oman":                 oman,
	"sultanate of oman":    oman,
	"egypt":                egypt,
	"jordan":               jordan,
	"lebanon":              lebanon,
	"turkey":               turkey,
	"turkiye":              turkey,
	"united kingdom":       uk,
	"uk":                   uk,
	"england":              uk,
	"france":               france,
	"united states":        usa,
	"usa":                  usa,
	"india":                india,
	"spain":                spain,
	"italy":                italy,
	"germany":              germany,
}

var defaultCities = map[string][2]string{
	// Bahrain
	"manama":     {"Manama", bahrain},
	"muharraq":   {"Muharraq", bahrain},
	"riffa":      {"Riffa", bahrain},
	"seef":       {"Seef", bahrain},
	"juffair":    {"Juffair", bahrain},
	"adliya":     {"Adliya", bahrain},
	"isa town":   {"Isa Town", bahrain},
	"hamad town": {"Hamad Town", bahrain},
	"sakhir":     {"Sakhir", bahrain},
	"amwaj":      {"Amwaj Islands", bahrain},
	"budaiya":    {"Budaiya", bahrain},
	"zallaq":     {"Zallaq", bahrain},

	// Saudi Arabia
	"riyadh":  {"Riyadh", saudi},
	"jeddah":  {"Jeddah", saudi},
	"dammam":  {"Dammam", saudi},
	"khobar":  {"Al Khobar", saudi},
	"dhahran": {"Dhahran", saudi},
	"alula":   {"AlUla", saudi},
	"al ula":  {"AlUla", saudi},
	"mecca":   {"Mecca", saudi},
	"makkah":  {"Mecca", saudi},
	"medina":  {"Medina", saudi},

	// United Arab Emirates
	"dubai":          {"Dubai", uae},
	"abu dhabi":      {"Abu Dhabi", uae},
	"sharjah":        {"Sharjah", uae},
	"ajman":          {"Ajman", uae},
	"ras al khaimah": {"Ras Al Khaimah", uae},
	"fujairah":       {"Fujairah", uae},

	// Rest of the region
	"doha":            {"Doha", qatar},
	"lusail":          {"Lusail", qatar},
	"kuwait city":     {"Kuwait City", kuwait},
	"muscat":          {"Muscat", oman},
	"salalah":         {"Salalah", oman},
	"cairo":           {"Cairo", egypt},
	"alexandria":      {"Alexandria", egypt},
	"sharm el sheikh": {"Sharm El Sheikh", egypt},
	"amman":           {"Amman", jordan},
	"beirut":          {"Beirut", lebanon},
	"istanbul":        {"Istanbul", turkey},

	// Further afield
	"london":     {"London", uk},
	"manchester": {"Manchester", uk},
	"paris":      {"Paris", france},
	"new york":   {"New York", usa},
	"las vegas":  {"Las Vegas", usa},
	"mumbai":     {"Mumbai", india},
	"madrid":     {"Madrid", spain},
	"barcelona":  {"Barcelona", spain},
	"milan":      {"Milan", italy},
	"rome":       {"Rome", italy},
	"berlin":     {"Berlin", germany},
}
