// Package catalog — неизменяемый каталог услуг студии.
package catalog

import "errors"

var ErrUnknownService = errors.New("unknown service")

// Длительность записи без указанной услуги.
const DefaultDurationMinutes = 60

// Service — позиция каталога.
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
}

var services = []Service{
	{ID: "func", Name: "Funkcionalni trening", DurationMinutes: 60},
	{ID: "snaga", Name: "Trening snage", DurationMinutes: 60},
	{ID: "crossfit", Name: "Crossfit", DurationMinutes: 45},
	{ID: "masaza", Name: "Masaža", DurationMinutes: 90},
}

var byID = func() map[string]Service {
	m := make(map[string]Service, len(services))
	for _, s := range services {
		m[s.ID] = s
	}
	return m
}()

// Lookup возвращает услугу по идентификатору.
func Lookup(id string) (Service, error) {
	s, ok := byID[id]
	if !ok {
		return Service{}, ErrUnknownService
	}
	return s, nil
}

// All возвращает копию каталога в исходном порядке.
func All() []Service {
	out := make([]Service, len(services))
	copy(out, services)
	return out
}

// Resolve переводит необязательный идентификатор в длительность и снимок названия.
// Пустой id — запись без услуги: 60 минут и nil вместо названия.
func Resolve(id string) (durationMinutes int, name *string, err error) {
	if id == "" {
		return DefaultDurationMinutes, nil, nil
	}
	s, err := Lookup(id)
	if err != nil {
		return 0, nil, err
	}
	n := s.Name
	return s.DurationMinutes, &n, nil
}
