package stations

// Station is a single stop on the line, with its identifier in each of
// the three upstream namespaces and its cumulative scheduled travel
// time from the line origin (Cais do Sodré).
type Station struct {
	UserID        string
	LiveID        string
	TimetableID   string
	Name          string
	OffsetMinutes int
}

// cascaisLine lists every station in line order, Cais do Sodré first.
// Offsets are the scheduled minutes from Cais do Sodré on an all-stops
// service.
var cascaisLine = []Station{
	{UserID: "94-69005", LiveID: "94-30005", TimetableID: "9430005", Name: "Cais do Sodre", OffsetMinutes: 0},
	{UserID: "94-69013", LiveID: "94-30013", TimetableID: "9430013", Name: "Santos", OffsetMinutes: 3},
	{UserID: "94-69039", LiveID: "94-30039", TimetableID: "9430039", Name: "Alcantara - Mar", OffsetMinutes: 6},
	{UserID: "94-69054", LiveID: "94-30054", TimetableID: "9430054", Name: "Belem", OffsetMinutes: 9},
	{UserID: "94-69088", LiveID: "94-30088", TimetableID: "9430088", Name: "Alges", OffsetMinutes: 12},
	{UserID: "94-69104", LiveID: "94-30104", TimetableID: "9430104", Name: "Cruz Quebrada", OffsetMinutes: 14},
	{UserID: "94-69120", LiveID: "94-30120", TimetableID: "9430120", Name: "Caxias", OffsetMinutes: 17},
	{UserID: "94-69146", LiveID: "94-30146", TimetableID: "9430146", Name: "Paco de Arcos", OffsetMinutes: 19},
	{UserID: "94-69161", LiveID: "94-30161", TimetableID: "9430161", Name: "Santo Amaro", OffsetMinutes: 21},
	{UserID: "94-69179", LiveID: "94-30179", TimetableID: "9430179", Name: "Oeiras", OffsetMinutes: 23},
	{UserID: "94-69187", LiveID: "94-34007", TimetableID: "9434007", Name: "Carcavelos", OffsetMinutes: 26},
	{UserID: "94-69203", LiveID: "94-30203", TimetableID: "9430203", Name: "Parede", OffsetMinutes: 29},
	{UserID: "94-69229", LiveID: "94-30229", TimetableID: "9430229", Name: "Sao Pedro do Estoril", OffsetMinutes: 31},
	{UserID: "94-69237", LiveID: "94-30237", TimetableID: "9430237", Name: "Sao Joao do Estoril", OffsetMinutes: 33},
	{UserID: "94-69245", LiveID: "94-30245", TimetableID: "9430245", Name: "Estoril", OffsetMinutes: 35},
	{UserID: "94-69252", LiveID: "94-30252", TimetableID: "9430252", Name: "Monte Estoril", OffsetMinutes: 37},
	{UserID: "94-69260", LiveID: "94-30260", TimetableID: "9430260", Name: "Cascais", OffsetMinutes: 40},
}

// legacyIDs remaps deprecated frontend identifiers onto current
// user-facing ids. Retained for backward compatibility with the first
// generation of the widget.
var legacyIDs = map[string]string{
	"94-21014": "94-69187", // Carcavelos
	"94-20006": "94-69005", // Cais do Sodre
}
