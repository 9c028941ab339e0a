package repositories

import (
	"time"

	"sahelbus/internal/domain/models"
	"sahelbus/internal/seat"
)

// SeedDemo loads the demo fleet, routes and the next two days of
// departures. Mirrors the launch timetable: Hiace minibuses between
// Nouakchott, Nouadhibou and Rosso.
func SeedDemo(ref *MemoryRef) error {
	// 14-seat Hiace: 7 rows of 2. Capacity always equals rows*columns.
	layout, err := seat.NewLayout(7, 2)
	if err != nil {
		return err
	}

	busNames := []string{"Toyota Hiace 1", "Toyota Hiace 2", "Toyota Hiace 3"}
	amenities := [][]string{
		{"AC", "WiFi", "USB Charging", "Reclining Seats"},
		{"AC", "WiFi", "USB Charging"},
		{"AC", "WiFi", "USB Charging", "Reclining Seats"},
	}
	buses := make([]models.Bus, 0, len(busNames))
	for i, name := range busNames {
		b, err := ref.CreateBus(models.Bus{
			Name:      name,
			Capacity:  layout.Capacity(),
			Layout:    layout,
			Amenities: amenities[i],
			IsActive:  true,
		})
		if err != nil {
			return err
		}
		buses = append(buses, b)
	}

	routeDefs := []models.Route{
		{From: "Nouakchott", To: "Nouadhibou", DistanceKm: 470, EstimatedDuration: 360, Price: 2500, IsActive: true},
		{From: "Nouadhibou", To: "Nouakchott", DistanceKm: 470, EstimatedDuration: 360, Price: 2500, IsActive: true},
		{From: "Nouakchott", To: "Rosso", DistanceKm: 200, EstimatedDuration: 180, Price: 1200, IsActive: true},
	}
	routes := make([]models.Route, 0, len(routeDefs))
	for _, r := range routeDefs {
		created, err := ref.CreateRoute(r)
		if err != nil {
			return err
		}
		routes = append(routes, created)
	}

	departures := []struct {
		day    int // 0 today, 1 tomorrow
		hour   int
		minute int
		bus    int
		route  int
	}{
		{0, 7, 0, 0, 0}, {0, 7, 30, 1, 0}, {0, 8, 0, 2, 0},
		{0, 7, 0, 0, 1}, {0, 7, 30, 1, 1}, {0, 8, 0, 2, 1},
		{1, 7, 0, 0, 0}, {1, 7, 30, 1, 0}, {1, 8, 0, 2, 0},
		{0, 12, 0, 0, 2},
	}

	now := time.Now()
	for _, d := range departures {
		route := routes[d.route]
		dep := time.Date(now.Year(), now.Month(), now.Day()+d.day, d.hour, d.minute, 0, 0, time.Local)
		_, err := ref.CreateTrip(models.Trip{
			BusID:         buses[d.bus].ID,
			RouteID:       route.ID,
			DepartureTime: dep,
			ArrivalTime:   dep.Add(time.Duration(route.EstimatedDuration) * time.Minute),
			Price:         route.Price,
			Status:        models.TripScheduled,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
