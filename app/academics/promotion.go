package academics

import (
	"errors"
	"fmt"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// ErrNoFurtherPromotion is returned when a student has exhausted the final
// program and cannot be promoted.
var ErrNoFurtherPromotion = errors.New("no further promotion possible")

// crossProgram maps the final year of a program to the first year of the next
// one: BBA 3 flows into MBA 1, MBA 2 into MBA Complementary 1.
var crossProgram = map[models.Program]models.Program{
	models.ProgramBBA: models.ProgramMBA,
	models.ProgramMBA: models.ProgramMBAComp,
}

// NextPeriod computes the (program, study year) a student lands on when
// promoted from the given position.
func NextPeriod(p models.Program, studyYear int) (models.Program, int, error) {
	if !ValidStudyYear(p, studyYear) {
		return "", 0, fmt.Errorf("study year %d out of range for %s", studyYear, Label(p))
	}
	if studyYear < Duration(p) {
		return p, studyYear + 1, nil
	}
	next, ok := crossProgram[p]
	if !ok {
		return "", 0, ErrNoFurtherPromotion
	}
	return next, 1, nil
}
