package similarity

import "sort"

// Curated supplies hand-picked lookalike words for a translation.
type Curated interface {
	// Lookalikes returns the curated set for word, or nil if none exists.
	Lookalikes(word string) []string
}

// Groups is a static Curated backed by a map keyed by lowercase word.
type Groups map[string][]string

// Lookalikes implements Curated.
func (g Groups) Lookalikes(word string) []string {
	return g[normalize(word)]
}

// Words returns the covered words in sorted order.
func (g Groups) Words() []string {
	out := make([]string, 0, len(g))
	for w := range g {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// BuiltinGroups returns the shipped lookalike groups. Keys are the
// translations shown as answers, so each group stays in the answer's
// language: Hungarian and Spanish groups for the built-in word lists, plus
// English groups for imported English-target lists.
func BuiltinGroups() Groups {
	return Groups{
		// Hungarian
		"szia":  {"szita", "szív", "szid", "szép", "szil"},
		"víz":   {"íz", "víg", "vész", "vas", "vár"},
		"igen":  {"ige", "igény", "iker", "ideg"},
		"nem":   {"nép", "név", "nemes", "nemez", "nyom"},
		"hol":   {"hal", "hold", "holt", "hó", "hely"},
		"étel":  {"éter", "tétel", "étek", "ítél"},
		"vonat": {"vonal", "vonás", "fonat", "vagon"},
		"busz":  {"bús", "busa", "húsz", "rúzs"},
		"kérem": {"kerek", "krém", "kerék", "terem"},

		// Spanish
		"hola":    {"ola", "bola", "cola", "hoja", "hora", "sola"},
		"agua":    {"aguja", "aguda", "agria", "yegua"},
		"gracias": {"gradas", "grasas", "granjas", "gracioso"},
		"tren":    {"tres", "trece", "trenza", "tener"},
		"quiero":  {"cuero", "quieto", "fiero", "quiebro"},
		"comida":  {"comedia", "corrida", "cómoda", "medida"},
		"ayuda":   {"ayunas", "aguda", "ayer", "mudar"},
		"baño":    {"paño", "daño", "caño", "año"},
		"dónde":   {"conde", "onda", "monte", "nadie"},

		// English
		"car":    {"bar", "far", "jar", "star", "card", "cart", "care", "core"},
		"cat":    {"bat", "hat", "rat", "sat", "mat", "pat", "fat", "chat"},
		"house":  {"mouse", "horse", "course", "hours", "houses", "housing"},
		"water":  {"winter", "waiter", "weather", "wetter", "walter", "wonder"},
		"food":   {"mood", "good", "wood", "hood", "stood", "foot", "fool"},
		"hello":  {"yellow", "bellow", "fellow", "hollow", "pillow", "willow"},
		"thank":  {"bank", "tank", "rank", "blank", "think", "thick"},
		"please": {"peace", "place", "plane", "plate", "play", "plaza"},
		"where":  {"wear", "were", "care", "dare", "fair", "hair", "pair"},
		"help":   {"kelp", "yelp", "held", "hell", "helm", "hemp"},
	}
}
