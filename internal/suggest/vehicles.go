package suggest

import "strings"

// The vehicle catalog is a static dataset: brands sold on the Czech
// market and their current model lines. Brands without a model list
// still autocomplete as brands, their model field is free text.
var carBrands = []string{
	"Abarth", "Alfa Romeo", "Aston Martin", "Audi", "Bentley", "BMW", "Bugatti", "Cadillac",
	"Chevrolet", "Chrysler", "Citroën", "Dacia", "Daewoo", "Daihatsu", "Dodge", "Ferrari",
	"Fiat", "Ford", "Honda", "Hummer", "Hyundai", "Infiniti", "Isuzu", "Jaguar", "Jeep",
	"Kia", "Lada", "Lamborghini", "Lancia", "Land Rover", "Lexus", "Maserati", "Mazda",
	"McLaren", "Mercedes-Benz", "Mini", "Mitsubishi", "Nissan", "Opel", "Peugeot", "Porsche",
	"Renault", "Rolls-Royce", "Rover", "Saab", "Seat", "Škoda", "Smart", "Subaru", "Suzuki",
	"Tesla", "Toyota", "Volkswagen", "Volvo",
}

var carModels = map[string][]string{
	"Škoda":         {"Citigo", "Fabia", "Scala", "Octavia", "Superb", "Kamiq", "Karoq", "Kodiaq", "Enyaq"},
	"BMW":           {"Řada 1", "Řada 2", "Řada 3", "Řada 4", "Řada 5", "Řada 6", "Řada 7", "Řada 8", "X1", "X2", "X3", "X4", "X5", "X6", "X7", "Z4", "i3", "i4", "iX"},
	"Mercedes-Benz": {"Třída A", "Třída B", "Třída C", "Třída E", "Třída S", "CLA", "CLS", "GLA", "GLB", "GLC", "GLE", "GLS", "EQA", "EQB", "EQC", "EQE", "EQS"},
	"Audi":          {"A1", "A3", "A4", "A5", "A6", "A7", "A8", "Q2", "Q3", "Q4 e-tron", "Q5", "Q7", "Q8", "e-tron", "TT"},
	"Volkswagen":    {"Polo", "Golf", "Passat", "Arteon", "T-Cross", "T-Roc", "Tiguan", "Touareg", "ID.3", "ID.4", "ID.5", "ID.7"},
	"Ford":          {"Fiesta", "Focus", "Mondeo", "Mustang", "Puma", "Kuga", "Explorer", "Ranger"},
	"Toyota":        {"Aygo", "Yaris", "Corolla", "Camry", "C-HR", "RAV4", "Highlander", "Land Cruiser", "Prius"},
	"Hyundai":       {"i10", "i20", "i30", "Elantra", "Ioniq", "Kona", "Tucson", "Santa Fe"},
	"Kia":           {"Picanto", "Rio", "Ceed", "Stonic", "Niro", "Sportage", "Sorento", "EV6"},
	"Peugeot":       {"108", "208", "308", "508", "2008", "3008", "5008"},
	"Renault":       {"Twingo", "Clio", "Megane", "Talisman", "Captur", "Kadjar", "Koleos", "Zoe"},
	"Citroën":       {"C1", "C3", "C4", "C5", "C3 Aircross", "C5 Aircross"},
	"Seat":          {"Ibiza", "Leon", "Arona", "Ateca", "Tarraco"},
	"Opel":          {"Corsa", "Astra", "Insignia", "Crossland", "Grandland", "Mokka"},
	"Mazda":         {"Mazda2", "Mazda3", "Mazda6", "CX-3", "CX-30", "CX-5", "CX-60", "MX-5"},
	"Nissan":        {"Micra", "Juke", "Qashqai", "X-Trail", "Leaf"},
	"Honda":         {"Jazz", "Civic", "Accord", "CR-V", "HR-V", "e"},
	"Volvo":         {"V40", "V60", "V90", "S60", "S90", "XC40", "XC60", "XC90"},
	"Tesla":         {"Model 3", "Model S", "Model X", "Model Y"},
	"Fiat":          {"500", "Panda", "Tipo", "500X"},
	"Dacia":         {"Sandero", "Logan", "Duster", "Jogger", "Spring"},
	"Suzuki":        {"Ignis", "Swift", "Vitara", "S-Cross"},
	"Mitsubishi":    {"Space Star", "ASX", "Eclipse Cross", "Outlander"},
	"Subaru":        {"Impreza", "XV", "Forester", "Outback"},
	"Jeep":          {"Renegade", "Compass", "Cherokee", "Grand Cherokee", "Wrangler"},
	"Land Rover":    {"Defender", "Discovery", "Discovery Sport", "Range Rover", "Range Rover Sport", "Range Rover Evoque"},
	"Porsche":       {"718", "911", "Taycan", "Panamera", "Macan", "Cayenne"},
	"Lexus":         {"CT", "IS", "ES", "LS", "UX", "NX", "RX"},
	"Alfa Romeo":    {"Giulietta", "Giulia", "Stelvio", "Tonale"},
	"Mini":          {"Cooper", "Countryman", "Clubman"},
}

// Brands returns up to 10 brands containing the query, in catalog
// order. An empty query returns nothing.
func Brands(query string) []string {
	return filterCatalog(carBrands, query)
}

// Models returns up to 10 models of the given brand containing the
// query. Without a brand there is nothing to suggest.
func Models(brand, query string) []string {
	return filterCatalog(carModels[brand], query)
}

func filterCatalog(entries []string, query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	out := make([]string, 0, maxSuggestions)
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry), query) {
			out = append(out, entry)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}
