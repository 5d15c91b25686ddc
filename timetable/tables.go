package timetable

// Departure times from Cais do Sodré toward Cascais. The daily table
// runs every day of the week; the weekday table is the Monday-Friday
// peak overlay.
var toCascaisDaily = []string{
	"05:30", "05:50", "06:10", "06:30", "06:50", "07:10",
	"07:30", "07:50", "08:10", "08:30", "08:50", "09:10",
	"09:30", "09:50", "10:10", "10:30", "10:50", "11:10",
	"11:30", "11:50", "12:10", "12:30", "12:50", "13:10",
	"13:30", "13:50", "14:10", "14:30", "14:50", "15:10",
	"15:30", "15:50", "16:10", "16:30", "16:50", "17:10",
	"17:30", "17:50", "18:10", "18:30", "18:50", "19:10",
	"19:30", "19:50", "20:10", "20:30", "20:50", "21:10",
	"21:30", "21:50", "22:10", "22:30", "22:50", "23:10",
	"23:30", "23:50",
}

var toCascaisWeekday = []string{
	"06:40", "07:00", "07:20", "07:40", "08:00", "08:20",
	"08:40", "09:00", "09:20", "09:40", "10:00", "10:20",
	"16:40", "17:00", "17:20", "17:40", "18:00", "18:20",
	"18:40", "19:00", "19:20", "19:40", "20:00", "20:20",
}

// Departure times from Cascais toward Cais do Sodré.
var toCaisDaily = []string{
	"05:35", "05:55", "06:15", "06:35", "06:55", "07:15",
	"07:35", "07:55", "08:15", "08:35", "08:55", "09:15",
	"09:35", "09:55", "10:15", "10:35", "10:55", "11:15",
	"11:35", "11:55", "12:15", "12:35", "12:55", "13:15",
	"13:35", "13:55", "14:15", "14:35", "14:55", "15:15",
	"15:35", "15:55", "16:15", "16:35", "16:55", "17:15",
	"17:35", "17:55", "18:15", "18:35", "18:55", "19:15",
	"19:35", "19:55", "20:15", "20:35", "20:55", "21:15",
	"21:35", "21:55", "22:15", "22:35", "22:55", "23:15",
	"23:35", "23:55",
}

var toCaisWeekday = []string{
	"06:45", "07:05", "07:25", "07:45", "08:05", "08:25",
	"08:45", "09:05", "09:25", "09:45", "10:05", "10:25",
	"16:45", "17:05", "17:25", "17:45", "18:05", "18:25",
	"18:45", "19:05", "19:25", "19:45", "20:05", "20:25",
}
