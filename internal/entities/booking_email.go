package entities

type BookingEmailData struct {
	UserName           string
	BookingCode        string
	BikeName           string
	Location           string
	StartTimeFormatted string
	EndTimeFormatted   string
	Status             string
	CurrentYear        int
}
