// Package pending хранит ожидающие подтверждения больницы инциденты.
// Записи живут только в памяти процесса.
package pending

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Confirmation - инцидент, отправленный в больницу и ожидающий ответа
type Confirmation struct {
	IncidentID   uuid.UUID
	HospitalID   uuid.UUID
	DispatchedAt time.Time
}

// Registry - потокобезопасный реестр ожидающих подтверждений
type Registry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]Confirmation
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[uuid.UUID]Confirmation)}
}

// Add регистрирует (или перезаписывает) ожидание для инцидента
func (r *Registry) Add(incidentID, hospitalID uuid.UUID, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[incidentID] = Confirmation{IncidentID: incidentID, HospitalID: hospitalID, DispatchedAt: at}
}

// Remove удаляет ожидание и сообщает, было ли оно
func (r *Registry) Remove(incidentID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.entries[incidentID]
	delete(r.entries, incidentID)
	return ok
}

// Get возвращает ожидание для инцидента
func (r *Registry) Get(incidentID uuid.UUID) (Confirmation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.entries[incidentID]
	return c, ok
}

// Len - количество ожиданий
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// TakeExpired атомарно извлекает все записи старше timeout, самые старые первыми
func (r *Registry) TakeExpired(now time.Time, timeout time.Duration) []Confirmation {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []Confirmation
	for id, c := range r.entries {
		if now.Sub(c.DispatchedAt) > timeout {
			expired = append(expired, c)
			delete(r.entries, id)
		}
	}
	sort.Slice(expired, func(i, j int) bool {
		return expired[i].DispatchedAt.Before(expired[j].DispatchedAt)
	})
	return expired
}

// Clear удаляет все записи
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entries)
}
