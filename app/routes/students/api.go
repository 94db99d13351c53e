package students

import (
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/academics"
	"github.com/habab6/ipec-campus-connect-sub000/app/config"
	"github.com/habab6/ipec-campus-connect-sub000/app/database"
	"github.com/habab6/ipec-campus-connect-sub000/app/models"
	"github.com/habab6/ipec-campus-connect-sub000/app/services"
)

var validate = validator.New()

func GetStudentsAPI(c *fiber.Ctx) error {
	filters := database.StudentFilters{
		Search:       c.Query("search"),
		Status:       c.Query("status"),
		Program:      c.Query("program"),
		AcademicYear: c.Query("academic_year"),
		SortBy:       c.Query("sort_by", "created_at"),
		SortOrder:    c.Query("sort_order", "desc"),
		Limit:        c.QueryInt("limit", 0),
		Offset:       c.QueryInt("offset", 0),
	}

	students, totalCount, err := database.GetStudentsWithFilters(config.GetDB(), filters)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch students"})
	}

	return c.JSON(fiber.Map{
		"students":    students,
		"count":       len(students),
		"total_count": totalCount,
	})
}

// GetStudentsStatsAPI returns student counts by status for the students page.
func GetStudentsStatsAPI(c *fiber.Ctx) error {
	stats, err := database.GetStudentsStats(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"error":   "Failed to fetch students statistics",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

func GetStudentByIDAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")

	student, err := database.GetStudentByID(config.GetDB(), studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"student": student,
	})
}

// CreateStudentAPI registers a new student. It generates the student
// reference, opens the first academic period and creates the registration fee
// and first tuition charge, all in one transaction.
func CreateStudentAPI(c *fiber.Ctx) error {
	type CreateStudentRequest struct {
		FirstName      string  `json:"first_name" validate:"required"`
		LastName       string  `json:"last_name" validate:"required"`
		Gender         string  `json:"gender"`
		BirthDate      string  `json:"birth_date" validate:"required"`
		BirthPlace     string  `json:"birth_place"`
		BirthCountry   string  `json:"birth_country"`
		Nationality    string  `json:"nationality" validate:"required"`
		IDDocType      string  `json:"id_doc_type"`
		IDDocNumber    string  `json:"id_doc_number"`
		Email          string  `json:"email" validate:"required,email"`
		Phone          string  `json:"phone"`
		AddressStreet  string  `json:"address_street"`
		AddressCity    string  `json:"address_city"`
		AddressPostal  string  `json:"address_postal"`
		AddressCountry string  `json:"address_country"`
		Program        string  `json:"program" validate:"required"`
		StudyYear      int     `json:"study_year" validate:"required,gte=1"`
		Specialty      *string `json:"specialty"`
		AcademicYear   string  `json:"academic_year" validate:"required"`
	}

	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": err.Error()})
	}

	program, err := academics.ParseProgram(req.Program)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Unknown program"})
	}
	if !academics.ValidStudyYear(program, req.StudyYear) {
		return c.Status(400).JSON(fiber.Map{"error": "Study year out of range for program"})
	}
	if _, err := academics.ParseAcademicYear(req.AcademicYear); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid academic year"})
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid birth date"})
	}

	db := config.GetDB()

	if _, err := database.GetStudentByEmail(db, req.Email); err == nil {
		return c.Status(409).JSON(fiber.Map{"error": "A student with this email already exists"})
	} else if !errors.Is(err, sql.ErrNoRows) {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to check email"})
	}

	now := time.Now()
	seq, err := database.NextStudentSequence(db, services.StudentReferencePrefix(now))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate student reference"})
	}

	student := &models.Student{
		Reference:      services.StudentReference(now, seq),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      models.CustomDate{Time: birthDate},
		BirthPlace:     req.BirthPlace,
		BirthCountry:   req.BirthCountry,
		Nationality:    req.Nationality,
		IDDocType:      req.IDDocType,
		IDDocNumber:    req.IDDocNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		AddressStreet:  req.AddressStreet,
		AddressCity:    req.AddressCity,
		AddressPostal:  req.AddressPostal,
		AddressCountry: req.AddressCountry,
		Program:        program,
		StudyYear:      req.StudyYear,
		Specialty:      req.Specialty,
		AcademicYear:   req.AcademicYear,
		Status:         models.StudentActive,
	}
	if req.Gender != "" {
		gender := models.Gender(req.Gender)
		student.Gender = &gender
	}

	history, charges := services.BuildRegistration(student, now)
	if err := database.CreateStudentWithCharges(db, student, history, charges); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to register student"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Student registered successfully",
		"student": student,
	})
}

// UpdateStudentAPI updates an existing student's identity and contact fields.
func UpdateStudentAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")

	db := config.GetDB()
	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	type UpdateStudentRequest struct {
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		Gender         *string `json:"gender"`
		BirthDate      *string `json:"birth_date"`
		BirthPlace     *string `json:"birth_place"`
		BirthCountry   *string `json:"birth_country"`
		Nationality    *string `json:"nationality"`
		IDDocType      *string `json:"id_doc_type"`
		IDDocNumber    *string `json:"id_doc_number"`
		Email          *string `json:"email"`
		Phone          *string `json:"phone"`
		AddressStreet  *string `json:"address_street"`
		AddressCity    *string `json:"address_city"`
		AddressPostal  *string `json:"address_postal"`
		AddressCountry *string `json:"address_country"`
		Specialty      *string `json:"specialty"`
		Status         *string `json:"status"`
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Gender != nil {
		gender := models.Gender(*req.Gender)
		student.Gender = &gender
	}
	if req.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid birth date"})
		}
		student.BirthDate = models.CustomDate{Time: parsed}
	}
	if req.BirthPlace != nil {
		student.BirthPlace = *req.BirthPlace
	}
	if req.BirthCountry != nil {
		student.BirthCountry = *req.BirthCountry
	}
	if req.Nationality != nil {
		student.Nationality = *req.Nationality
	}
	if req.IDDocType != nil {
		student.IDDocType = *req.IDDocType
	}
	if req.IDDocNumber != nil {
		student.IDDocNumber = *req.IDDocNumber
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.AddressStreet != nil {
		student.AddressStreet = *req.AddressStreet
	}
	if req.AddressCity != nil {
		student.AddressCity = *req.AddressCity
	}
	if req.AddressPostal != nil {
		student.AddressPostal = *req.AddressPostal
	}
	if req.AddressCountry != nil {
		student.AddressCountry = *req.AddressCountry
	}
	if req.Specialty != nil {
		student.Specialty = req.Specialty
	}
	if req.Status != nil {
		status := models.StudentStatus(*req.Status)
		switch status {
		case models.StudentActive, models.StudentInactive, models.StudentSuspended, models.StudentArchived:
			student.Status = status
		default:
			return c.Status(400).JSON(fiber.Map{"error": "Unknown status"})
		}
	}

	if err := database.UpdateStudent(db, student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update student"})
	}

	return c.JSON(fiber.Map{
		"message": "Student updated successfully",
		"student": student,
	})
}

func DeleteStudentAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")

	if err := database.SoftDeleteStudent(config.GetDB(), studentID); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete student"})
	}

	return c.JSON(fiber.Map{"message": "Student deleted successfully"})
}

// PromoteStudentAPI moves a student to the next study year (or the follow-up
// program), opens the new academic period and creates the tuition charge and
// attestation for it.
func PromoteStudentAPI(c *fiber.Ctx) error {
	return transitionAPI(c, services.TransitionPromote)
}

// RepeatStudentAPI reopens the same study year under the next academic year.
func RepeatStudentAPI(c *fiber.Ctx) error {
	return transitionAPI(c, services.TransitionRepeat)
}

func transitionAPI(c *fiber.Ctx, kind services.TransitionKind) error {
	studentID := c.Params("id")
	db := config.GetDB()

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	// The attestation number carries only (reference, study year, program
	// code), so the re-issue sequence counts prior numbers on that prefix for
	// the period being opened. A repeat keeps the pair and therefore continues
	// the existing sequence instead of regenerating the first number.
	nextProgram, nextStudyYear := student.Program, student.StudyYear
	if kind == services.TransitionPromote {
		var err error
		nextProgram, nextStudyYear, err = academics.NextPeriod(student.Program, student.StudyYear)
		if err != nil {
			if errors.Is(err, academics.ErrNoFurtherPromotion) {
				return c.Status(409).JSON(fiber.Map{"error": "Student has completed the final program"})
			}
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}
	prefix := services.AttestationNumberPrefix(student.Reference, nextStudyYear, nextProgram)
	seq, err := database.CountAttestationsByNumber(db, prefix)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to number attestation"})
	}

	transition, err := services.BuildTransition(student, kind, seq, time.Now())
	if err != nil {
		if errors.Is(err, academics.ErrNoFurtherPromotion) {
			return c.Status(409).JSON(fiber.Map{"error": "Student has completed the final program"})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if err := database.ApplyTransition(db, transition); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to apply transition"})
	}

	return c.JSON(fiber.Map{
		"message":     "Transition applied successfully",
		"student":     transition.Student,
		"tuition":     transition.Tuition,
		"attestation": transition.Attestation,
	})
}

// ArchiveStudentAPI marks a student archived. No charges or documents are
// created and further transitions are refused.
func ArchiveStudentAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	db := config.GetDB()

	if _, err := database.GetStudentByID(db, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch student"})
	}

	if err := database.UpdateStudentStatus(db, studentID, models.StudentArchived); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to archive student"})
	}

	return c.JSON(fiber.Map{"message": "Student archived successfully"})
}

func GetStudentHistoryAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")

	history, err := database.GetStudentHistory(config.GetDB(), studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch history"})
	}

	return c.JSON(fiber.Map{
		"history": history,
		"count":   len(history),
	})
}

// GetAcademicYearsAPI lists every academic year that has had activity, for
// filter dropdowns.
func GetAcademicYearsAPI(c *fiber.Ctx) error {
	years, err := database.GetAcademicYears(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch academic years"})
	}

	return c.JSON(fiber.Map{
		"academic_years": years,
		"count":          len(years),
	})
}

// GetStudyYearOptionsAPI returns the valid study years for a program, used by
// the registration form.
func GetStudyYearOptionsAPI(c *fiber.Ctx) error {
	program, err := academics.ParseProgram(c.Params("program"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Unknown program"})
	}

	return c.JSON(fiber.Map{
		"program":     program,
		"study_years": academics.StudyYearOptions(program),
	})
}
