package timetable

import "github.com/kilianp07/platalloc/core/model"

// Reference returns the built-in demonstration timetable: twelve trains
// spread over the first four hours of the window.
func Reference() []model.Train {
	return []model.Train{
		{ID: "T1", Name: "Express 101", ScheduledArrival: 0, ScheduledDeparture: 20},
		{ID: "T2", Name: "Regional 202", ScheduledArrival: 10, ScheduledDeparture: 30},
		{ID: "T3", Name: "Intercity 303", ScheduledArrival: 25, ScheduledDeparture: 40},
		{ID: "T4", Name: "Local 404", ScheduledArrival: 35, ScheduledDeparture: 55},
		{ID: "T5", Name: "Express 505", ScheduledArrival: 50, ScheduledDeparture: 65},
		{ID: "T6", Name: "Freight 606", ScheduledArrival: 60, ScheduledDeparture: 90},
		{ID: "T7", Name: "Regional 707", ScheduledArrival: 80, ScheduledDeparture: 95},
		{ID: "T8", Name: "Intercity 808", ScheduledArrival: 100, ScheduledDeparture: 120},
		{ID: "T9", Name: "Local 909", ScheduledArrival: 115, ScheduledDeparture: 130},
		{ID: "T10", Name: "Express 1010", ScheduledArrival: 140, ScheduledDeparture: 160},
		{ID: "T11", Name: "Regional 1111", ScheduledArrival: 170, ScheduledDeparture: 195},
		{ID: "T12", Name: "Night 1212", ScheduledArrival: 200, ScheduledDeparture: 230},
	}
}
