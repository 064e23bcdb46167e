package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ServiceCategory вид услуги, определяет сетку слотов и модель длительности
type ServiceCategory string

const (
	CategoryCompactVehicle ServiceCategory = "compact_vehicle"
	CategoryLargeVehicle   ServiceCategory = "large_vehicle"
	CategoryPickupVehicle  ServiceCategory = "pickup_vehicle"
	CategorySalonVisit     ServiceCategory = "salon_visit"
)

// ErrUnknownCategory возвращается при разборе неизвестной категории
var ErrUnknownCategory = errors.New("domain: unknown service category")

// AllCategories список всех поддерживаемых категорий
var AllCategories = []ServiceCategory{
	CategoryCompactVehicle,
	CategoryLargeVehicle,
	CategoryPickupVehicle,
	CategorySalonVisit,
}

// ParseServiceCategory разбирает категорию из строки запроса (регистр не важен)
func ParseServiceCategory(s string) (ServiceCategory, error) {
	c := ServiceCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// IsValid returns true for one of the known categories
func (c ServiceCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// IsVehicle returns true for categories served in fixed 120-minute blocks at anchor times.
// Pickup vehicles follow the same rule as compact and large ones.
func (c ServiceCategory) IsVehicle() bool {
	return c == CategoryCompactVehicle || c == CategoryLargeVehicle || c == CategoryPickupVehicle
}

// IsSalon returns true for the salon visit category
func (c ServiceCategory) IsSalon() bool {
	return c == CategorySalonVisit
}

func (c ServiceCategory) String() string {
	return string(c)
}
