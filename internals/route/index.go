package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	walletRoute "kursusku_backend/internals/features/finance/wallet/route"
	assessmentRoute "kursusku_backend/internals/features/lms/assessments/route"
	attendanceRoute "kursusku_backend/internals/features/lms/attendance/route"
	certificateRoute "kursusku_backend/internals/features/lms/certificates/route"
	courseRoute "kursusku_backend/internals/features/lms/courses/route"
	examRoute "kursusku_backend/internals/features/lms/exams/route"
	messageRoute "kursusku_backend/internals/features/lms/messages/route"
	adminRoute "kursusku_backend/internals/features/users/admin/route"
	authRoute "kursusku_backend/internals/features/users/auth/route"
	ossHelper "kursusku_backend/internals/helpers/oss"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, oss *ossHelper.Client) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	public := app.Group("/api")
	authRoute.AuthRoutes(public, db)

	// ===================== PROTECTED =====================
	// Webhook Midtrans ikut group ini tapi dilewati lewat skip list.
	api := app.Group("/api", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Setting up AdminRoutes...")
	adminRoute.AdminRoutes(api, db)

	log.Println("[INFO] Setting up CourseRoutes...")
	courseRoute.CourseRoutes(api, db, oss)

	log.Println("[INFO] Setting up WalletRoutes...")
	walletRoute.WalletRoutes(api, db)

	log.Println("[INFO] Setting up AssessmentRoutes...")
	assessmentRoute.AssessmentRoutes(api, db)

	log.Println("[INFO] Setting up ExamRoutes...")
	examRoute.ExamRoutes(api, db)

	log.Println("[INFO] Setting up CertificateRoutes...")
	certificateRoute.CertificateRoutes(api, db, oss)

	log.Println("[INFO] Setting up AttendanceRoutes...")
	attendanceRoute.AttendanceRoutes(api, db)

	log.Println("[INFO] Setting up MessageRoutes...")
	messageRoute.MessageRoutes(api, db)
}
