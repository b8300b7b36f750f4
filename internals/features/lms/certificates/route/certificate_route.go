package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/lms/certificates/controller"
	ossHelper "kursusku_backend/internals/helpers/oss"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func CertificateRoutes(api fiber.Router, db *gorm.DB, oss *ossHelper.Client) {
	ctrl := controller.NewCertificateController(db, oss)

	certificates := api.Group("/certificates")

	studentOnly := authMiddleware.OnlyRoles(constants.RoleErrorStudent("sertifikat"), constants.StudentOnly...)

	certificates.Post("/upload", studentOnly, ctrl.UploadCertificate)
	certificates.Get("/student", studentOnly, ctrl.GetStudentCertificates)
	certificates.Post("/:examId", studentOnly, ctrl.SaveCertificate)
}
