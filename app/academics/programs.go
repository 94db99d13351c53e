package academics

import (
	"fmt"

	"github.com/habab6/ipec-campus-connect-sub000/app/models"
)

// RegistrationFee is the flat fee charged at registration, due 14 days later.
const RegistrationFee = 350.0

// RegistrationFeeDueDays is the payment window for the registration fee.
const RegistrationFeeDueDays = 14

type programInfo struct {
	label    string
	code     string
	duration int
	tuition  float64
}

var programs = map[models.Program]programInfo{
	models.ProgramBBA:     {label: "BBA", code: "B", duration: 3, tuition: 4950},
	models.ProgramMBA:     {label: "MBA", code: "M", duration: 2, tuition: 6950},
	models.ProgramMBAComp: {label: "MBA Complementary", code: "MC", duration: 1, tuition: 3000},
}

// Duration returns the number of study years of a program.
func Duration(p models.Program) int {
	return programs[p].duration
}

// Code returns the short program code used in document numbers.
func Code(p models.Program) string {
	return programs[p].code
}

// Label returns the display name used on generated documents.
func Label(p models.Program) string {
	return programs[p].label
}

// TuitionAmount returns the flat minerval for one period of the program.
func TuitionAmount(p models.Program) float64 {
	return programs[p].tuition
}

// ParseProgram validates a raw program value.
func ParseProgram(raw string) (models.Program, error) {
	p := models.Program(raw)
	if _, ok := programs[p]; !ok {
		return "", fmt.Errorf("unknown program %q", raw)
	}
	return p, nil
}

// StudyYearOptions returns the valid study years for a program, 1 through its
// duration.
func StudyYearOptions(p models.Program) []int {
	d := Duration(p)
	years := make([]int, 0, d)
	for y := 1; y <= d; y++ {
		years = append(years, y)
	}
	return years
}

// ValidStudyYear reports whether y is within the program's duration.
func ValidStudyYear(p models.Program, y int) bool {
	return y >= 1 && y <= Duration(p)
}
