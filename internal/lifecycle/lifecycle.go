// Package lifecycle - машина состояний инцидента: допустимые переходы, временные метки и ETA.
package lifecycle

import (
	"fmt"
	"math"
	"time"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// DefaultAverageSpeedKmh средняя скорость машины для расчета ETA
const DefaultAverageSpeedKmh = 40.0

// edges - разрешенные переходы без учета принудительного назначения и закрытия машиной
var edges = map[models.Status][]models.Status{
	models.StatusPending:    {models.StatusDispatched},
	models.StatusDispatched: {models.StatusOnRoute, models.StatusRejected},
	models.StatusOnRoute:    {models.StatusArrived, models.StatusRejected},
	models.StatusArrived:    {models.StatusAdmitted, models.StatusRejected},
	models.StatusRejected:   {models.StatusDispatched},
}

// CanTransition сообщает, допустим ли переход from -> to
func CanTransition(from, to models.Status) bool {
	switch to {
	case models.StatusCompleted:
		// закрытие со стороны машины возможно из любого состояния
		return from != models.StatusCompleted
	case models.StatusResolved:
		return !from.IsTerminal()
	}
	for _, next := range edges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition - запрошенное изменение инцидента.
// Nil-поля назначений означают "без изменений".
type Transition struct {
	To        models.Status
	Ambulance *models.Ref[models.Ambulance]
	Hospital  *models.Ref[models.Hospital]
	ETA       *string
	// Capacity - что занято у больницы. Новая ссылка на больницу без Capacity
	// означает, что ничего не занято.
	Capacity *models.CapacityUnit
	// Force - ручное переназначение администратором, минует проверку переходов
	Force bool
}

// Apply применяет переход к инциденту. Это единственное место, где меняются
// статус и назначения инцидента. При отказе инцидент не изменяется.
func Apply(inc *models.Incident, t Transition, now time.Time) error {
	if inc == nil {
		return fmt.Errorf("%w: nil incident", models.ErrInvalidInput)
	}

	ambulance := inc.AssignedAmbulance
	if t.Ambulance != nil {
		ambulance = *t.Ambulance
	}
	hospital := inc.AssignedHospital
	if t.Hospital != nil {
		hospital = *t.Hospital
	}

	if t.Force {
		if t.To != models.StatusDispatched {
			return fmt.Errorf("%w: override must dispatch, got %s", models.ErrInvalidTransition, t.To)
		}
	} else {
		if !CanTransition(inc.Status, t.To) {
			return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, inc.Status, t.To)
		}
		if err := checkGuard(inc, t.To, ambulance, hospital); err != nil {
			return err
		}
		if (t.Ambulance != nil || t.Hospital != nil) && !reassignsOn(inc.Status, t.To) {
			return fmt.Errorf("%w: assignment change not allowed on %s -> %s", models.ErrInvalidTransition, inc.Status, t.To)
		}
	}

	inc.Status = t.To
	inc.AssignedAmbulance = ambulance
	inc.AssignedHospital = hospital
	switch {
	case t.Capacity != nil:
		inc.HeldCapacity = *t.Capacity
	case t.Hospital != nil:
		inc.HeldCapacity = models.CapacityNone
	}
	if t.ETA != nil {
		eta := *t.ETA
		inc.ETA = &eta
	}
	if t.Force {
		inc.ForceAssigned = true
	}
	inc.UpdatedAt = now
	return nil
}

func checkGuard(inc *models.Incident, to models.Status, ambulance models.Ref[models.Ambulance], hospital models.Ref[models.Hospital]) error {
	switch {
	case inc.Status == models.StatusPending && to == models.StatusDispatched:
		if !ambulance.IsSet() {
			return fmt.Errorf("%w: dispatch requires an assigned ambulance", models.ErrInvalidTransition)
		}
	case inc.Status == models.StatusRejected && to == models.StatusDispatched:
		if !hospital.IsSet() || hospital.ID == inc.AssignedHospital.ID {
			return fmt.Errorf("%w: re-dispatch requires a different hospital", models.ErrInvalidTransition)
		}
	}
	return nil
}

// reassignsOn - переходы, на которых разрешена смена назначений
func reassignsOn(from, to models.Status) bool {
	return to == models.StatusDispatched && (from == models.StatusPending || from == models.StatusRejected)
}

// EstimateETA считает время прибытия машины в минутах: max(1, round(d / speed * 60))
func EstimateETA(incident, ambulance models.GeoPoint, speedKmh float64) string {
	if speedKmh <= 0 {
		speedKmh = DefaultAverageSpeedKmh
	}
	minutes := math.Round(incident.DistanceKm(ambulance) / speedKmh * 60)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min", int(minutes))
}
