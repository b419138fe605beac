// Package seed holds the base data loaded into an empty store: the bell
// schedule, the subject catalogue and a starter roster of classes, rooms and
// teachers. IDs are assigned by the store.
package seed

import "github.com/skolar/timetable-api/internal/models"

// Periods returns the bell schedule, eight lessons from 07:15 to 14:25.
func Periods() []models.Period {
	return []models.Period{
		{Number: 1, StartTime: "07:15", EndTime: "08:00", Name: "1. óra"},
		{Number: 2, StartTime: "08:10", EndTime: "08:55", Name: "2. óra"},
		{Number: 3, StartTime: "09:05", EndTime: "09:50", Name: "3. óra"},
		{Number: 4, StartTime: "10:00", EndTime: "10:45", Name: "4. óra"},
		{Number: 5, StartTime: "10:55", EndTime: "11:40", Name: "5. óra"},
		{Number: 6, StartTime: "11:50", EndTime: "12:35", Name: "6. óra"},
		{Number: 7, StartTime: "12:45", EndTime: "13:30", Name: "7. óra"},
		{Number: 8, StartTime: "13:40", EndTime: "14:25", Name: "8. óra"},
	}
}

// Subjects returns the subject catalogue.
func Subjects() []models.Subject {
	return []models.Subject{
		{Name: "Magyar nyelv és irodalom", ShortName: "Magyar", Color: "#e74c3c"},
		{Name: "Matematika", ShortName: "Matek", Color: "#3498db"},
		{Name: "Történelem", ShortName: "Töri", Color: "#9b59b6"},
		{Name: "Angol nyelv", ShortName: "Angol", Color: "#1abc9c"},
		{Name: "Német nyelv", ShortName: "Német", Color: "#f39c12"},
		{Name: "Fizika", ShortName: "Fizika", Color: "#2ecc71"},
		{Name: "Kémia", ShortName: "Kémia", Color: "#e67e22"},
		{Name: "Biológia", ShortName: "Bio", Color: "#27ae60"},
		{Name: "Földrajz", ShortName: "Földrajz", Color: "#16a085"},
		{Name: "Informatika", ShortName: "Info", Color: "#8e44ad"},
		{Name: "Testnevelés", ShortName: "Tesi", Color: "#c0392b"},
		{Name: "Ének-zene", ShortName: "Ének", Color: "#d35400"},
		{Name: "Rajz és vizuális kultúra", ShortName: "Rajz", Color: "#f1c40f"},
		{Name: "Osztályfőnöki", ShortName: "Ofő", Color: "#34495e"},
	}
}

// Classes returns the starter class roster.
func Classes() []models.Class {
	return []models.Class{
		{Name: "9.A", Grade: 9, Section: "A", StudentCount: 28},
		{Name: "9.B", Grade: 9, Section: "B", StudentCount: 30},
		{Name: "9.C", Grade: 9, Section: "C", StudentCount: 27},
		{Name: "10.A", Grade: 10, Section: "A", StudentCount: 29},
		{Name: "10.B", Grade: 10, Section: "B", StudentCount: 31},
		{Name: "10.C", Grade: 10, Section: "C", StudentCount: 26},
		{Name: "11.A", Grade: 11, Section: "A", StudentCount: 25},
		{Name: "11.B", Grade: 11, Section: "B", StudentCount: 28},
		{Name: "12.A", Grade: 12, Section: "A", StudentCount: 24},
		{Name: "12.B", Grade: 12, Section: "B", StudentCount: 26},
	}
}

// Rooms returns the starter room roster.
func Rooms() []models.Room {
	return []models.Room{
		{Name: "101", Building: "A", Floor: 1, Capacity: 30, Type: "classroom"},
		{Name: "102", Building: "A", Floor: 1, Capacity: 30, Type: "classroom"},
		{Name: "103", Building: "A", Floor: 1, Capacity: 30, Type: "classroom"},
		{Name: "201", Building: "A", Floor: 2, Capacity: 30, Type: "classroom"},
		{Name: "202", Building: "A", Floor: 2, Capacity: 30, Type: "classroom"},
		{Name: "203", Building: "A", Floor: 2, Capacity: 30, Type: "classroom"},
		{Name: "Informatika 1", Building: "B", Floor: 1, Capacity: 20, Type: "computer"},
		{Name: "Informatika 2", Building: "B", Floor: 1, Capacity: 20, Type: "computer"},
		{Name: "Fizika labor", Building: "B", Floor: 2, Capacity: 25, Type: "lab"},
		{Name: "Kémia labor", Building: "B", Floor: 2, Capacity: 25, Type: "lab"},
		{Name: "Tornaterem", Building: "C", Floor: 0, Capacity: 60, Type: "gym"},
		{Name: "Könyvtár", Building: "A", Floor: 0, Capacity: 40, Type: "library"},
	}
}

// Teachers returns the starter teaching staff.
func Teachers() []models.Teacher {
	return []models.Teacher{
		{Name: "Kovács Mária", ShortName: "KM", Email: "kovacs.maria@iskola.hu", Subjects: "Magyar nyelv és irodalom", Color: "#e74c3c"},
		{Name: "Nagy István", ShortName: "NI", Email: "nagy.istvan@iskola.hu", Subjects: "Matematika", Color: "#3498db"},
		{Name: "Szabó Anna", ShortName: "SZA", Email: "szabo.anna@iskola.hu", Subjects: "Történelem", Color: "#9b59b6"},
		{Name: "Tóth Péter", ShortName: "TP", Email: "toth.peter@iskola.hu", Subjects: "Angol nyelv", Color: "#1abc9c"},
		{Name: "Kiss Katalin", ShortName: "KK", Email: "kiss.katalin@iskola.hu", Subjects: "Német nyelv", Color: "#f39c12"},
		{Name: "Horváth János", ShortName: "HJ", Email: "horvath.janos@iskola.hu", Subjects: "Fizika", Color: "#2ecc71"},
		{Name: "Molnár Éva", ShortName: "ME", Email: "molnar.eva@iskola.hu", Subjects: "Kémia", Color: "#e67e22"},
		{Name: "Varga Gábor", ShortName: "VG", Email: "varga.gabor@iskola.hu", Subjects: "Biológia", Color: "#27ae60"},
		{Name: "Farkas Zoltán", ShortName: "FZ", Email: "farkas.zoltan@iskola.hu", Subjects: "Földrajz", Color: "#16a085"},
		{Name: "Balogh Tamás", ShortName: "BT", Email: "balogh.tamas@iskola.hu", Subjects: "Informatika", Color: "#8e44ad"},
		{Name: "Németh László", ShortName: "NL", Email: "nemeth.laszlo@iskola.hu", Subjects: "Testnevelés", Color: "#c0392b"},
		{Name: "Papp Judit", ShortName: "PJ", Email: "papp.judit@iskola.hu", Subjects: "Ének-zene", Color: "#d35400"},
	}
}
