package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "feekhata_backend/internals/features/lembaga/students/dto"
	model "feekhata_backend/internals/features/lembaga/students/model"
	helper "feekhata_backend/internals/helpers"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

/* ======================= CREATE ======================= */
// POST /api/a/students
func (h *StudentController) Create(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	m := req.ToModel(instituteID)
	if err := h.DB.Create(m).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") {
			return fiber.NewError(fiber.StatusConflict, "Student already exists")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	return helper.JsonCreated(c, "Student created", m)
}

/* ======================= LIST ======================= */
// GET /api/a/students
func (h *StudentController) List(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 50, 200)

	q := h.DB.Where("student_institute_id = ?", instituteID)
	if helper.IsTeacher(c) {
		teacherID, terr := helper.GetUserIDFromToken(c)
		if terr != nil {
			return terr
		}
		q = q.Where("student_teacher_id = ?", teacherID)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("student_name ILIKE ?", "%"+search+"%")
	}

	var rows []model.StudentModel
	if err := q.Order("student_name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list students")
	}

	return helper.Success(c, "OK", rows)
}

/* ======================== GET BY ID ======================== */
// GET /api/a/students/:id
func (h *StudentController) GetByID(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	var row model.StudentModel
	if err := h.DB.
		Where("student_id = ? AND student_institute_id = ?", c.Params("id"), instituteID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return helper.Success(c, "OK", row)
}

/* ======================= UPDATE ======================= */
// PATCH /api/a/students/:id
func (h *StudentController) Update(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	var row model.StudentModel
	if err := h.DB.
		Where("student_id = ? AND student_institute_id = ?", c.Params("id"), instituteID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch student")
	}

	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validator.New().Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	req.ApplyTo(&row)
	if err := h.DB.Save(&row).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return helper.Success(c, "Student updated", row)
}

/* ======================= DELETE ======================= */
// DELETE /api/a/students/:id (soft delete; ledger history stays)
func (h *StudentController) Delete(c *fiber.Ctx) error {
	instituteID, err := helper.GetInstituteIDFromToken(c)
	if err != nil {
		return err
	}

	res := h.DB.
		Where("student_id = ? AND student_institute_id = ?", c.Params("id"), instituteID).
		Delete(&model.StudentModel{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	return helper.Success(c, "Student deleted", nil)
}
