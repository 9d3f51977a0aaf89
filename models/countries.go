package models

// Country - запись справочника стран для автозаполнения турнира.
type Country struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Ranking int    `json:"ranking"`
}

// Countries - встроенный справочник для автозаполнения заявки. Рейтинг -
// глобальный посев по умолчанию; мир может переопределить его per-country.
var Countries = []Country{
	{Code: "ARG", Name: "Argentina", Ranking: 1},
	{Code: "FRA", Name: "France", Ranking: 2},
	{Code: "ESP", Name: "Spain", Ranking: 3},
	{Code: "ENG", Name: "England", Ranking: 4},
	{Code: "BRA", Name: "Brazil", Ranking: 5},
	{Code: "BEL", Name: "Belgium", Ranking: 6},
	{Code: "NED", Name: "Netherlands", Ranking: 7},
	{Code: "POR", Name: "Portugal", Ranking: 8},
	{Code: "COL", Name: "Colombia", Ranking: 9},
	{Code: "ITA", Name: "Italy", Ranking: 10},
	{Code: "URU", Name: "Uruguay", Ranking: 11},
	{Code: "CRO", Name: "Croatia", Ranking: 12},
	{Code: "GER", Name: "Germany", Ranking: 13},
	{Code: "MAR", Name: "Morocco", Ranking: 14},
	{Code: "SUI", Name: "Switzerland", Ranking: 15},
	{Code: "USA", Name: "United States", Ranking: 16},
	{Code: "JPN", Name: "Japan", Ranking: 17},
	{Code: "SEN", Name: "Senegal", Ranking: 18},
	{Code: "MEX", Name: "Mexico", Ranking: 19},
	{Code: "IRN", Name: "Iran", Ranking: 20},
	{Code: "DEN", Name: "Denmark", Ranking: 21},
	{Code: "AUT", Name: "Austria", Ranking: 22},
	{Code: "KOR", Name: "South Korea", Ranking: 23},
	{Code: "AUS", Name: "Australia", Ranking: 24},
	{Code: "UKR", Name: "Ukraine", Ranking: 25},
	{Code: "SRB", Name: "Serbia", Ranking: 26},
	{Code: "POL", Name: "Poland", Ranking: 27},
	{Code: "SWE", Name: "Sweden", Ranking: 28},
	{Code: "WAL", Name: "Wales", Ranking: 29},
	{Code: "NGA", Name: "Nigeria", Ranking: 30},
	{Code: "ECU", Name: "Ecuador", Ranking: 31},
	{Code: "TUN", Name: "Tunisia", Ranking: 32},
	{Code: "ALG", Name: "Algeria", Ranking: 33},
	{Code: "EGY", Name: "Egypt", Ranking: 34},
	{Code: "CMR", Name: "Cameroon", Ranking: 35},
	{Code: "CHI", Name: "Chile", Ranking: 36},
	{Code: "CRC", Name: "Costa Rica", Ranking: 37},
	{Code: "CAN", Name: "Canada", Ranking: 38},
	{Code: "GHA", Name: "Ghana", Ranking: 39},
	{Code: "PAR", Name: "Paraguay", Ranking: 40},
	{Code: "KSA", Name: "Saudi Arabia", Ranking: 41},
	{Code: "QAT", Name: "Qatar", Ranking: 42},
	{Code: "CZE", Name: "Czechia", Ranking: 43},
	{Code: "NOR", Name: "Norway", Ranking: 44},
	{Code: "PER", Name: "Peru", Ranking: 45},
	{Code: "SCO", Name: "Scotland", Ranking: 46},
	{Code: "NZL", Name: "New Zealand", Ranking: 47},
	{Code: "JAM", Name: "Jamaica", Ranking: 48},
}

// FindCountry ищет страну в справочнике по коду.
func FindCountry(code string) (Country, bool) {
	for _, c := range Countries {
		if c.Code == code {
			return c, true
		}
	}
	return Country{}, false
}
