package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kursusku_backend/internals/constants"
	"kursusku_backend/internals/features/finance/wallet/controller"
	authMiddleware "kursusku_backend/internals/middlewares/auth"
)

func WalletRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewWalletController(db)

	wallet := api.Group("/wallet")

	studentOnly := authMiddleware.OnlyRoles(constants.RoleErrorStudent("wallet"), constants.StudentOnly...)

	// Webhook Midtrans masuk tanpa auth (path ada di skip list middleware)
	wallet.Post("/topup/notification", ctrl.HandleMidtransNotification)

	wallet.Post("/add", studentOnly, ctrl.AddMoney)
	wallet.Get("/balance", studentOnly, ctrl.GetBalance)
	wallet.Get("/transactions", studentOnly, ctrl.GetTransactions)
	wallet.Post("/enroll", studentOnly, ctrl.EnrollCourse)
	wallet.Post("/topup", studentOnly, ctrl.CreateTopUp)
}
