package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kursusku_backend/internals/features/lms/certificates/dto"
	"kursusku_backend/internals/features/lms/certificates/model"
	examModel "kursusku_backend/internals/features/lms/exams/model"
	helper "kursusku_backend/internals/helpers"
	ossHelper "kursusku_backend/internals/helpers/oss"
)

type CertificateController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	OSS      *ossHelper.Client // nil bila OSS belum dikonfigurasi
}

func NewCertificateController(db *gorm.DB, oss *ossHelper.Client) *CertificateController {
	return &CertificateController{DB: db, Validate: validator.New(), OSS: oss}
}

// eligibleResult — ada minimal satu attempt yang lolos syarat sertifikat.
func (ctrl *CertificateController) eligibleResult(studentID, examID uuid.UUID) (*examModel.ExamResult, error) {
	var result examModel.ExamResult
	err := ctrl.DB.
		Where("exam_result_student_id = ? AND exam_result_exam_id = ? AND exam_result_certificate_eligible = ?",
			studentID, examID, true).
		Order("exam_result_submitted_at DESC").
		First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

/* ===================== SAVE (student) ===================== */
// POST /api/certificates/:examId — simpan URL artefak yang dirender client.
func (ctrl *CertificateController) SaveCertificate(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	examID, err := uuid.Parse(c.Params("examId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Exam ID tidak valid")
	}

	var req dto.SaveCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := ctrl.eligibleResult(studentID, examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusForbidden, "Kamu belum memenuhi syarat sertifikat untuk exam ini")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	cert := model.Certificate{
		CertificateStudentID: studentID,
		CertificateExamID:    examID,
		CertificateCourseID:  result.ExamResultCourseID,
		CertificateURL:       req.CertificateURL,
	}
	if err := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "certificate_student_id"}, {Name: "certificate_exam_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"certificate_url", "updated_at"}),
	}).Create(&cert).Error; err != nil {
		log.Println("[ERROR] SaveCertificate:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan sertifikat")
	}

	return helper.Success(c, "Sertifikat berhasil disimpan", fiber.Map{
		"certificate_url": req.CertificateURL,
	})
}

/* ===================== UPLOAD (student) ===================== */
// POST /api/certificates/upload — upload artefak (data URI) ke OSS lalu
// simpan URL hasilnya di exam result.
func (ctrl *CertificateController) UploadCertificate(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UploadCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	examID, err := uuid.Parse(req.ExamID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Exam ID tidak valid")
	}

	if _, err := ctrl.eligibleResult(studentID, examID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusForbidden, "Kamu belum memenuhi syarat sertifikat untuk exam ini")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}

	if ctrl.OSS == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Penyimpanan media belum dikonfigurasi")
	}

	url, err := ctrl.OSS.UploadDataURI("certificates", req.CertificateImage)
	if err != nil {
		log.Println("[ERROR] UploadCertificate:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal upload sertifikat")
	}

	if err := ctrl.DB.Model(&examModel.ExamResult{}).
		Where("exam_result_student_id = ? AND exam_result_exam_id = ? AND exam_result_certificate_eligible = ?",
			studentID, examID, true).
		Update("exam_result_certificate_url", url).Error; err != nil {
		log.Println("[ERROR] UploadCertificate update:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Gagal menyimpan URL sertifikat")
	}

	return helper.Success(c, "Sertifikat berhasil diupload", fiber.Map{
		"certificate_url": url,
	})
}

/* ===================== LIST (student) ===================== */
// GET /api/certificates/student
func (ctrl *CertificateController) GetStudentCertificates(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	type certRow struct {
		CertificateID  uuid.UUID `gorm:"column:certificate_id" json:"certificate_id"`
		CourseName     string    `gorm:"column:course_name" json:"course_name"`
		CertificateURL string    `gorm:"column:certificate_url" json:"certificate_url"`
		IssuedAt       string    `gorm:"column:certificate_issued_at" json:"issued_at"`
	}

	var certs []certRow
	if err := ctrl.DB.Table("certificates").
		Select("certificates.certificate_id, courses.course_name, certificates.certificate_url, certificates.certificate_issued_at").
		Joins("JOIN courses ON courses.course_id = certificates.certificate_course_id").
		Where("certificates.certificate_student_id = ?", studentID).
		Order("certificates.certificate_issued_at DESC").
		Scan(&certs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
	}
	if len(certs) == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Belum ada sertifikat")
	}
	return helper.Success(c, "", fiber.Map{"certificates": certs})
}
