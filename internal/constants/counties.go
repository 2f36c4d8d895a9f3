package constants

// Counties is the closed set of Kenya's 47 counties accepted on a membership
// application. Values are stored lowercase with underscores; matching is exact,
// so "Nairobi" is rejected where "nairobi" is accepted.
var Counties = []string{
	"baringo", "bomet", "bungoma", "busia", "elgeyo_marakwet", "embu",
	"garissa", "homa_bay", "isiolo", "kajiado", "kakamega", "kericho",
	"kiambu", "kilifi", "kirinyaga", "kisii", "kisumu", "kitui", "kwale",
	"laikipia", "lamu", "machakos", "makueni", "mandera", "marsabit",
	"meru", "migori", "mombasa", "muranga", "nairobi", "nakuru", "nandi",
	"narok", "nyamira", "nyandarua", "nyeri", "samburu", "siaya",
	"taita_taveta", "tana_river", "tharaka_nithi", "trans_nzoia",
	"turkana", "uasin_gishu", "vihiga", "wajir", "west_pokot",
}

var countySet = func() map[string]bool {
	m := make(map[string]bool, len(Counties))
	for _, c := range Counties {
		m[c] = true
	}
	return m
}()

func IsValidCounty(county string) bool {
	return countySet[county]
}
