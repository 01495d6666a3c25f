package scenario

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/optimscale/internal/model"

	"github.com/google/uuid"
)

// AddAnnotation attaches note to period. The period must be one of the
// chart's seeded labels and the note must not be blank.
func (c *Chart) AddAnnotation(period, note string) (model.Annotation, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return model.Annotation{}, fmt.Errorf("%w: empty note", ErrInvalidAnnotation)
	}
	if model.IndexOf(c.seed, period) < 0 {
		return model.Annotation{}, fmt.Errorf("%w: %q is not a period of %s", ErrInvalidAnnotation, period, c.spec.Title)
	}
	a := model.Annotation{
		ID:        uuid.NewString(),
		Period:    period,
		Note:      note,
		CreatedAt: c.now(),
	}
	c.annotations = append(c.annotations, a)
	return a, nil
}

// Annotations returns every annotation in insertion order.
func (c *Chart) Annotations() []model.Annotation {
	out := make([]model.Annotation, len(c.annotations))
	copy(out, c.annotations)
	return out
}

// AnnotationFor returns the annotations attached to period.
func (c *Chart) AnnotationFor(period string) []model.Annotation {
	var out []model.Annotation
	for _, a := range c.annotations {
		if a.Period == period {
			out = append(out, a)
		}
	}
	return out
}
