package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// Ref - ссылка на ресурс: либо только идентификатор, либо идентификатор вместе с загруженной записью.
// Нулевое значение означает отсутствие назначения.
type Ref[T any] struct {
	ID     uuid.UUID
	Record *T
}

// RefTo создает неразрешенную ссылку по идентификатору
func RefTo[T any](id uuid.UUID) Ref[T] {
	return Ref[T]{ID: id}
}

// IsSet сообщает, указывает ли ссылка на ресурс
func (r Ref[T]) IsSet() bool {
	return r.ID != uuid.Nil
}

// IsResolved сообщает, загружена ли запись
func (r Ref[T]) IsResolved() bool {
	return r.IsSet() && r.Record != nil
}

// Resolve возвращает ссылку с подставленной записью
func (r Ref[T]) Resolve(record *T) Ref[T] {
	return Ref[T]{ID: r.ID, Record: record}
}

// Unresolved отбрасывает загруженную запись, оставляя только идентификатор
func (r Ref[T]) Unresolved() Ref[T] {
	return Ref[T]{ID: r.ID}
}

// MarshalJSON пишет полную запись, если она загружена, иначе строковый идентификатор или null
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch {
	case !r.IsSet():
		return []byte("null"), nil
	case r.Record != nil:
		return json.Marshal(r.Record)
	default:
		return json.Marshal(r.ID.String())
	}
}

// UnmarshalJSON принимает null, строковый идентификатор или объект с полем id
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = Ref[T]{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid reference id %q: %w", raw, err)
		}
		*r = Ref[T]{ID: id}
		return nil
	}

	var head struct {
		ID uuid.UUID `json:"id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	record := new(T)
	if err := json.Unmarshal(data, record); err != nil {
		return err
	}
	*r = Ref[T]{ID: head.ID, Record: record}
	return nil
}
