package query_availability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	queryAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/query_availability"
)

const msgNoSlotsFound = "нет свободных слотов в ближайшие %d дней"

// DayResponse ответ на запрос с датой
type DayResponse struct {
	Mode           string   `json:"mode"`
	Category       string   `json:"category"`
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}

// NearestResponse ответ на запрос без даты
type NearestResponse struct {
	Mode     string `json:"mode"`
	Category string `json:"category"`
	Found    bool   `json:"found"`
	Date     string `json:"date,omitempty"`
	Time     string `json:"time,omitempty"`
	StartsAt string `json:"startsAt,omitempty"` // RFC3339 в часовом поясе календаря
	Message  string `json:"message,omitempty"`
}

// NotServiceableResponse тело ответа 422
type NotServiceableResponse struct {
	Code              int     `json:"code"`
	Message           string  `json:"message"`
	NearestDistanceKm float64 `json:"nearestDistanceKm"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *queryAvailability.Response) interface{} {
	if resp.Day != nil {
		slots := make([]string, len(resp.Day.AvailableSlots))
		for i, slot := range resp.Day.AvailableSlots {
			slots[i] = slot.String()
		}
		return &DayResponse{
			Mode:           string(resp.Mode),
			Category:       resp.Category.String(),
			Date:           resp.Day.Date.Format(domain.DateFormat),
			AvailableSlots: slots,
		}
	}

	out := &NearestResponse{
		Mode:     string(resp.Mode),
		Category: resp.Category.String(),
	}
	if resp.Nearest == nil {
		return out
	}

	out.Found = resp.Nearest.Found
	if resp.Nearest.Found {
		out.Date = resp.Nearest.Date.Format(domain.DateFormat)
		out.Time = resp.Nearest.Time.String()
		out.StartsAt = resp.Nearest.StartsAt().Format(time.RFC3339)
	} else {
		// При отсутствии слотов просмотрен весь доступный горизонт
		out.Message = fmt.Sprintf(msgNoSlotsFound, resp.Nearest.DaysScanned)
	}

	return out
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(latStr, lngStr, categoryStr, dateStr string) (*queryAvailability.Request, error) {
	location, err := ParseLocation(latStr, lngStr)
	if err != nil {
		return nil, err
	}

	category, err := domain.ParseServiceCategory(categoryStr)
	if err != nil {
		return nil, err
	}

	req := &queryAvailability.Request{
		Location: location,
		Category: category,
	}

	if dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}

// ParseLocation парсит координаты из query параметров
func ParseLocation(latStr, lngStr string) (domain.Location, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("invalid lat: %w", err)
	}
	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		return domain.Location{}, fmt.Errorf("invalid lng: %w", err)
	}
	return domain.Location{Latitude: lat, Longitude: lng}, nil
}
