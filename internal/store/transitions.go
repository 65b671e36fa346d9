package store

import "citaverde/internal/models"

var turnTransitions = map[string][]string{
	"atender":   {models.TurnWaiting},
	"completar": {models.TurnAttending},
	"cancelar":  {models.TurnWaiting},
}

var appointmentTransitions = map[string][]string{
	"iniciar":   {models.AppointmentConfirmed},
	"completar": {models.AppointmentInProgress},
	"cancelar":  {models.AppointmentConfirmed},
	"no-show":   {models.AppointmentConfirmed},
}

func TurnTransition(action string) ([]string, string, bool) {
	from, ok := turnTransitions[action]
	if !ok {
		return nil, "", false
	}
	switch action {
	case "atender":
		return from, models.TurnAttending, true
	case "completar":
		return from, models.TurnAttended, true
	case "cancelar":
		return from, models.TurnCancelled, true
	}
	return nil, "", false
}

func AppointmentTransition(action string) ([]string, string, bool) {
	from, ok := appointmentTransitions[action]
	if !ok {
		return nil, "", false
	}
	switch action {
	case "iniciar":
		return from, models.AppointmentInProgress, true
	case "completar":
		return from, models.AppointmentCompleted, true
	case "cancelar":
		return from, models.AppointmentCancelled, true
	case "no-show":
		return from, models.AppointmentNoShow, true
	}
	return nil, "", false
}

func ValidTurnTransition(action, fromStatus string) bool {
	allowed, ok := turnTransitions[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}

func ValidAppointmentTransition(action, fromStatus string) bool {
	allowed, ok := appointmentTransitions[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}
