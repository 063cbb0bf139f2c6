package models

import "errors"

var (
	// ErrNotFound - запрошенный инцидент, машина или больница не существует
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition - переход статуса не разрешен машиной состояний
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAmbulanceUnavailable - машина уже обслуживает другой активный инцидент
	ErrAmbulanceUnavailable = errors.New("ambulance is serving another incident")
	// ErrInvalidInput - некорректные входные данные
	ErrInvalidInput = errors.New("invalid input")
)
