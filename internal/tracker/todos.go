package tracker

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/julianstephens/girassol/internal/models"
	"github.com/julianstephens/girassol/internal/schema"
)

var priorityRank = map[models.Priority]int{
	models.PriorityHigh:   0,
	models.PriorityMedium: 1,
	models.PriorityLow:    2,
}

// Todos returns the stored todos in insertion order
func (s *Service) Todos() []models.Todo {
	list := loadList[models.Todo](s, schema.Todos)
	for i := range list {
		if list[i].Subtasks == nil {
			list[i].Subtasks = []models.SubTask{}
		}
	}
	return list
}

// SortedTodos lists pending todos before completed ones, higher priority first
// within each group. Ties keep insertion order.
func (s *Service) SortedTodos() []models.Todo {
	list := s.Todos()
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Completed != list[j].Completed {
			return !list[i].Completed
		}
		return priorityRank[list[i].Priority] < priorityRank[list[j].Priority]
	})
	return list
}

// Todo resolves one todo by id, text or id prefix
func (s *Service) Todo(ref string) (models.Todo, error) {
	list := s.Todos()
	i, err := resolve(list, ref, todoID, todoText)
	if err != nil {
		return models.Todo{}, fmt.Errorf("todo %w", err)
	}
	return list[i], nil
}

// AddTodo appends a pending todo
func (s *Service) AddTodo(text string, priority models.Priority) (models.Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Todo{}, fmt.Errorf("todo: %w", ErrEmptyText)
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	t := models.Todo{ID: s.newID(), Text: text, Priority: priority, Subtasks: []models.SubTask{}}
	saveList(s, schema.Todos, append(s.Todos(), t))
	return t, nil
}

// ToggleTodo flips completion. Subtasks are left as they are.
func (s *Service) ToggleTodo(ref string) (models.Todo, error) {
	return s.updateTodo(ref, func(t *models.Todo) error {
		t.Completed = !t.Completed
		return nil
	})
}

func (s *Service) DeleteTodo(ref string) (models.Todo, error) {
	list := s.Todos()
	i, err := resolve(list, ref, todoID, todoText)
	if err != nil {
		return models.Todo{}, fmt.Errorf("todo %w", err)
	}
	removed := list[i]
	saveList(s, schema.Todos, append(list[:i], list[i+1:]...))
	return removed, nil
}

// AddSubtasks appends one pending subtask per non-blank text
func (s *Service) AddSubtasks(ref string, texts ...string) (models.Todo, error) {
	var subtasks []models.SubTask
	for _, text := range texts {
		if text = strings.TrimSpace(text); text != "" {
			subtasks = append(subtasks, models.SubTask{ID: s.newID(), Text: text})
		}
	}
	if len(subtasks) == 0 {
		return models.Todo{}, fmt.Errorf("subtask: %w", ErrEmptyText)
	}
	return s.updateTodo(ref, func(t *models.Todo) error {
		t.Subtasks = append(t.Subtasks, subtasks...)
		return nil
	})
}

// ToggleSubtask flips a subtask of the referenced todo. sub may be an id, the
// subtask text, or a 1-based position.
func (s *Service) ToggleSubtask(ref, sub string) (models.Todo, error) {
	return s.updateTodo(ref, func(t *models.Todo) error {
		i, err := resolveSubtask(t.Subtasks, sub)
		if err != nil {
			return err
		}
		t.Subtasks[i].Completed = !t.Subtasks[i].Completed
		return nil
	})
}

func resolveSubtask(list []models.SubTask, ref string) (int, error) {
	if pos, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		if pos < 1 || pos > len(list) {
			return -1, fmt.Errorf("subtask %w: position %d", ErrNotFound, pos)
		}
		return pos - 1, nil
	}
	i, err := resolve(list, ref, func(st models.SubTask) string { return st.ID }, func(st models.SubTask) string { return st.Text })
	if err != nil {
		return -1, fmt.Errorf("subtask %w", err)
	}
	return i, nil
}

func (s *Service) updateTodo(ref string, fn func(*models.Todo) error) (models.Todo, error) {
	list := s.Todos()
	i, err := resolve(list, ref, todoID, todoText)
	if err != nil {
		return models.Todo{}, fmt.Errorf("todo %w", err)
	}
	if err := fn(&list[i]); err != nil {
		return models.Todo{}, err
	}
	saveList(s, schema.Todos, list)
	return list[i], nil
}

func todoID(t models.Todo) string   { return t.ID }
func todoText(t models.Todo) string { return t.Text }
