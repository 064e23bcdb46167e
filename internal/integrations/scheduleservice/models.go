package scheduleservice

// DayScheduleResponse расписание точки на один день
type DayScheduleResponse struct {
	Date            string             `json:"date"` // YYYY-MM-DD
	BookedIntervals []IntervalResponse `json:"booked_intervals"`
}

// IntervalResponse занятый интервал, время в формате HH:MM
type IntervalResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CoverageResponse сводка покрытия, посчитанная на стороне сервиса
type CoverageResponse struct {
	TeamCount         int      `json:"team_count"`
	IsServiceable     bool     `json:"is_serviceable"`
	NearestDistanceKm *float64 `json:"nearest_distance_km,omitempty"`
}

// ErrorResponse модель ошибки от сервиса расписаний
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
