package course

import (
	"fmt"
	"strings"
)

// Validate performs all structural checks on a course.
// Returns a combined error describing all problems found, or nil if valid.
func Validate(c *Course) error {
	var errs []string

	if c.ID == "" {
		errs = append(errs, "course ID is empty")
	}
	if len(c.Topics) == 0 {
		errs = append(errs, "course has no topics")
	}

	topicIDs := make(map[string]bool, len(c.Topics))
	for i, t := range c.Topics {
		prefix := fmt.Sprintf("topic %d", i)
		if t.ID == "" {
			errs = append(errs, prefix+": ID is empty")
		} else if topicIDs[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate topic ID: %q", t.ID))
		}
		topicIDs[t.ID] = true

		if t.Start < 0 {
			errs = append(errs, fmt.Sprintf("%s: start must be >= 0, got %g", prefix, t.Start))
		}
		if t.Start >= t.End {
			errs = append(errs, fmt.Sprintf("%s: start (%g) must be before end (%g)", prefix, t.Start, t.End))
		}
		// Windows are ordered and must not overlap.
		if i > 0 && t.Start < c.Topics[i-1].End {
			errs = append(errs, fmt.Sprintf("%s: window starts at %g before previous topic ends at %g", prefix, t.Start, c.Topics[i-1].End))
		}
	}

	questionIDs := make(map[string]bool, len(c.Questions))
	for i, q := range c.Questions {
		prefix := fmt.Sprintf("question %d", i)
		if q.ID == "" {
			errs = append(errs, prefix+": ID is empty")
		} else if questionIDs[q.ID] {
			errs = append(errs, fmt.Sprintf("duplicate question ID: %q", q.ID))
		}
		questionIDs[q.ID] = true

		if len(q.Options) < 2 {
			errs = append(errs, fmt.Sprintf("%s: needs at least 2 options, got %d", prefix, len(q.Options)))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			errs = append(errs, fmt.Sprintf("%s: correct option %d out of range", prefix, q.Correct))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("course %q validation failed:\n  %s", c.ID, strings.Join(errs, "\n  "))
	}
	return nil
}
