package types

// List editing helpers used while a section buffer is open. Each returns the
// updated slice; out-of-range indexes leave the slice unchanged.

// AddExperience appends a blank entry with one empty achievement.
func AddExperience(list []Experience) []Experience {
	return append(list, Experience{Achievements: []string{""}})
}

// RemoveExperience drops the entry at i.
func RemoveExperience(list []Experience, i int) []Experience {
	return removeAt(list, i)
}

// AddAchievement appends an empty bullet to entry i.
func AddAchievement(list []Experience, i int) []Experience {
	if i < 0 || i >= len(list) {
		return list
	}
	list[i].Achievements = append(list[i].Achievements, "")
	return list
}

// RemoveAchievement drops bullet j of entry i.
func RemoveAchievement(list []Experience, i, j int) []Experience {
	if i < 0 || i >= len(list) {
		return list
	}
	list[i].Achievements = removeAt(list[i].Achievements, j)
	return list
}

// AddProject appends a blank project with one empty description bullet.
func AddProject(list []Project) []Project {
	return append(list, Project{Description: []string{""}})
}

// RemoveProject drops the project at i.
func RemoveProject(list []Project, i int) []Project {
	return removeAt(list, i)
}

// AddDescription appends an empty bullet to project i.
func AddDescription(list []Project, i int) []Project {
	if i < 0 || i >= len(list) {
		return list
	}
	list[i].Description = append(list[i].Description, "")
	return list
}

// RemoveDescription drops bullet j of project i.
func RemoveDescription(list []Project, i, j int) []Project {
	if i < 0 || i >= len(list) {
		return list
	}
	list[i].Description = removeAt(list[i].Description, j)
	return list
}

// AddEducation appends a blank entry.
func AddEducation(list []Education) []Education {
	return append(list, Education{})
}

// RemoveEducation drops the entry at i.
func RemoveEducation(list []Education, i int) []Education {
	return removeAt(list, i)
}

func removeAt[T any](list []T, i int) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]T, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}
