package service

import (
	"github.com/shenikar/dispatch_console/internal/models"
)

// Selection хранит выбранный инцидент представления.
//
// Правила согласования со свежим списком:
//   - ничего не выбрано и список не пуст: выбирается первый элемент;
//   - выбранный id пропал из списка: выбирается первый элемент (или ничего);
//   - выбранный id на месте: id сохраняется, тело заменяется свежим.
//
// Выбор пользователя живет, пока id присутствует в списке.
type Selection struct {
	current *models.Incident
}

// ID возвращает id выбранного инцидента или пустую строку
func (s *Selection) ID() string {
	if s.current == nil {
		return ""
	}
	return s.current.ID
}

// Incident возвращает копию выбранного инцидента или nil
func (s *Selection) Incident() *models.Incident {
	if s.current == nil {
		return nil
	}
	incident := *s.current
	return &incident
}

// Reconcile применяет новый спроецированный список
func (s *Selection) Reconcile(list []models.Incident) {
	if s.current != nil {
		if fresh, ok := findIncident(list, s.current.ID); ok {
			s.current = fresh
			return
		}
	}
	if len(list) == 0 {
		s.current = nil
		return
	}
	first := list[0]
	s.current = &first
}

// Select выбирает инцидент по явному действию пользователя.
// Если id нет в текущем списке, выбор не меняется.
func (s *Selection) Select(list []models.Incident, id string) error {
	incident, ok := findIncident(list, id)
	if !ok {
		return models.ErrIncidentNotFound
	}
	s.current = incident
	return nil
}

func findIncident(list []models.Incident, id string) (*models.Incident, bool) {
	for i := range list {
		if list[i].ID == id {
			incident := list[i]
			return &incident, true
		}
	}
	return nil, false
}
