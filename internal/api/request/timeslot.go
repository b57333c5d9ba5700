package request

// GenerateTimeSlotsRequest asks the server to create hourly slots for one
// field on one civil date, from StartHour (inclusive) to EndHour (exclusive).
type GenerateTimeSlotsRequest struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartHour int    `json:"startHour" validate:"min=0,max=23"`
	EndHour   int    `json:"endHour" validate:"required,min=1,max=24,gtfield=StartHour"`
}
