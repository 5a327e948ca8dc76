package editing

import (
	"errors"
	"fmt"

	"github.com/jonathan/resume-editor/internal/types"
)

// ErrNotList is returned for an entry or bullet operation on a section that
// has no such list.
var ErrNotList = errors.New("section has no such list")

// EntryError reports an entry or bullet index that does not exist in the
// buffer.
type EntryError struct {
	Section SectionID
	Entry   int
	Bullet  int // -1 when the entry itself is missing
}

func (e *EntryError) Error() string {
	if e.Bullet >= 0 {
		return fmt.Sprintf("%s: entry %d has no bullet %d", e.Section, e.Entry, e.Bullet)
	}
	return fmt.Sprintf("%s: no entry %d", e.Section, e.Entry)
}

// AddEntry appends a blank entry to a list section's buffer.
func (c *Controller) AddEntry(id SectionID) error {
	return c.editBuffer(id, func(d *types.Documents, id SectionID) error {
		switch id {
		case SectionExperience:
			d.Resume.Experience = types.AddExperience(d.Resume.Experience)
		case SectionProjects:
			d.Resume.Projects = types.AddProject(d.Resume.Projects)
		case SectionEducation:
			d.Resume.Education = types.AddEducation(d.Resume.Education)
		default:
			return fmt.Errorf("%s: %w", id, ErrNotList)
		}
		return nil
	})
}

// RemoveEntry drops entry i from a list section's buffer.
func (c *Controller) RemoveEntry(id SectionID, i int) error {
	return c.editBuffer(id, func(d *types.Documents, id SectionID) error {
		n, err := entryCount(d, id)
		if err != nil {
			return err
		}
		if i < 0 || i >= n {
			return &EntryError{Section: id, Entry: i, Bullet: -1}
		}
		switch id {
		case SectionExperience:
			d.Resume.Experience = types.RemoveExperience(d.Resume.Experience, i)
		case SectionProjects:
			d.Resume.Projects = types.RemoveProject(d.Resume.Projects, i)
		case SectionEducation:
			d.Resume.Education = types.RemoveEducation(d.Resume.Education, i)
		}
		return nil
	})
}

// AddBullet appends an empty achievement (experience) or description line
// (projects) to entry i.
func (c *Controller) AddBullet(id SectionID, i int) error {
	return c.editBuffer(id, func(d *types.Documents, id SectionID) error {
		if _, err := bulletCount(d, id, i); err != nil {
			return err
		}
		if id == SectionExperience {
			d.Resume.Experience = types.AddAchievement(d.Resume.Experience, i)
		} else {
			d.Resume.Projects = types.AddDescription(d.Resume.Projects, i)
		}
		return nil
	})
}

// RemoveBullet drops bullet j of entry i.
func (c *Controller) RemoveBullet(id SectionID, i, j int) error {
	return c.editBuffer(id, func(d *types.Documents, id SectionID) error {
		n, err := bulletCount(d, id, i)
		if err != nil {
			return err
		}
		if j < 0 || j >= n {
			return &EntryError{Section: id, Entry: i, Bullet: j}
		}
		if id == SectionExperience {
			d.Resume.Experience = types.RemoveAchievement(d.Resume.Experience, i, j)
		} else {
			d.Resume.Projects = types.RemoveDescription(d.Resume.Projects, i, j)
		}
		return nil
	})
}

// editBuffer applies fn to a scratch copy of the buffer and keeps it only
// when fn succeeds.
func (c *Controller) editBuffer(id SectionID, fn func(*types.Documents, SectionID) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.checkEditing(id)
	if err != nil {
		return err
	}
	scratch := c.buffer.Clone()
	if err := fn(&scratch, id); err != nil {
		return err
	}
	c.buffer = scratch
	return nil
}

func entryCount(d *types.Documents, id SectionID) (int, error) {
	switch id {
	case SectionExperience:
		return len(d.Resume.Experience), nil
	case SectionProjects:
		return len(d.Resume.Projects), nil
	case SectionEducation:
		return len(d.Resume.Education), nil
	default:
		return 0, fmt.Errorf("%s: %w", id, ErrNotList)
	}
}

// bulletCount returns the bullet count of entry i. Only experience and
// projects have bullets.
func bulletCount(d *types.Documents, id SectionID, i int) (int, error) {
	if id != SectionExperience && id != SectionProjects {
		return 0, fmt.Errorf("%s: %w", id, ErrNotList)
	}
	n, _ := entryCount(d, id)
	if i < 0 || i >= n {
		return 0, &EntryError{Section: id, Entry: i, Bullet: -1}
	}
	if id == SectionExperience {
		return len(d.Resume.Experience[i].Achievements), nil
	}
	return len(d.Resume.Projects[i].Description), nil
}
