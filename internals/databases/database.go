package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	walletModel "kursusku_backend/internals/features/finance/wallet/model"
	assessmentModel "kursusku_backend/internals/features/lms/assessments/model"
	attendanceModel "kursusku_backend/internals/features/lms/attendance/model"
	certModel "kursusku_backend/internals/features/lms/certificates/model"
	courseModel "kursusku_backend/internals/features/lms/courses/model"
	examModel "kursusku_backend/internals/features/lms/exams/model"
	messageModel "kursusku_backend/internals/features/lms/messages/model"
	authModel "kursusku_backend/internals/features/users/auth/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kursusku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		TranslateError: true, // unique violation → gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("[ERROR] Gagal ambil *sql.DB: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// Migrate menjalankan AutoMigrate untuk seluruh tabel aplikasi.
func Migrate() {
	if err := DB.AutoMigrate(
		&authModel.User{},
		&authModel.OTP{},
		&courseModel.Course{},
		&courseModel.CourseEnrollment{},
		&walletModel.Wallet{},
		&walletModel.WalletTransaction{},
		&walletModel.WalletTopUp{},
		&assessmentModel.Assessment{},
		&assessmentModel.AssessmentResult{},
		&examModel.Exam{},
		&examModel.ExamResult{},
		&attendanceModel.AttendanceSession{},
		&messageModel.Message{},
		&certModel.Certificate{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
	log.Println("✅ AutoMigrate selesai.")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
