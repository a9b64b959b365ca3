package curriculum

import "aicareer/models"

// DefaultTaskPoints is awarded for tasks that carry no point value.
const DefaultTaskPoints = 10

// TotalTasks counts every task over every (module, day) pair.
func TotalTasks(d models.StackDetails) int {
	total := 0
	for _, m := range d.Modules {
		for _, day := range m.Curriculum {
			total += len(day.Tasks)
		}
	}
	return total
}

// FindTask locates a task by module id, day number and index within the day.
func FindTask(d models.StackDetails, moduleID string, day, taskIndex int) (models.Task, error) {
	for _, m := range d.Modules {
		if m.ID != moduleID {
			continue
		}
		for _, cd := range m.Curriculum {
			if cd.Day != day {
				continue
			}
			if taskIndex < 0 || taskIndex >= len(cd.Tasks) {
				return models.Task{}, ErrTaskNotFound
			}
			return cd.Tasks[taskIndex], nil
		}
		return models.Task{}, ErrTaskNotFound
	}
	return models.Task{}, ErrTaskNotFound
}

// TaskPoints returns the points a task is worth.
func TaskPoints(t models.Task) int {
	if t.Points <= 0 {
		return DefaultTaskPoints
	}
	return t.Points
}
