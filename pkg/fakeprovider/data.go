package fakeprovider

var safeEmailDomains = []string{"example.com", "example.org", "example.net"}

var banks = []string{
	"Sberbank",
	"VTB",
	"Gazprombank",
	"Alfa-Bank",
	"Rosselkhozbank",
	"Otkritie",
	"Sovcombank",
	"Raiffeisenbank",
	"Promsvyazbank",
	"Tinkoff Bank",
}

type patronymic struct {
	male   string
	female string
}

var patronymics = []patronymic{
	{"Ivanovich", "Ivanovna"},
	{"Petrovich", "Petrovna"},
	{"Sergeevich", "Sergeevna"},
	{"Alexandrovich", "Alexandrovna"},
	{"Nikolaevich", "Nikolaevna"},
	{"Dmitrievich", "Dmitrievna"},
	{"Andreevich", "Andreevna"},
	{"Mikhailovich", "Mikhailovna"},
	{"Vladimirovich", "Vladimirovna"},
	{"Olegovich", "Olegovna"},
}

// ISO 3166-1 alpha-2 codes Country draws from.
var countryCodes = []string{
	"RU", "BY", "KZ", "AM", "AZ", "GE", "UZ", "KG", "TJ", "MD",
	"UA", "LV", "LT", "EE", "FI", "DE", "FR", "IT", "ES", "PL",
	"CZ", "TR", "CN", "MN", "IN", "JP", "US", "CA", "BR", "AE",
}
