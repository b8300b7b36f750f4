package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret         string
	MidtransServerKey string

	// "sandbox" (default) atau "production" — menentukan endpoint Midtrans.
	MidtransEnv string

	// Mode perhitungan total nilai: "answered" (legacy, hanya soal yang dijawab)
	// atau "all" (seluruh soal di assessment/exam).
	GradingTotalMode string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransEnv = strings.ToLower(GetEnv("MIDTRANS_ENV"))
	GradingTotalMode = strings.ToLower(GetEnv("GRADING_TOTAL_MODE"))

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	if MidtransServerKey == "" {
		log.Println("⚠️ MIDTRANS_SERVER_KEY belum diset, top-up via Midtrans nonaktif")
	}

	switch MidtransEnv {
	case "", "sandbox":
		MidtransEnv = "sandbox"
	case "production":
		log.Println("✅ Midtrans berjalan di mode production")
	default:
		log.Printf("⚠️ MIDTRANS_ENV tidak dikenal (%q), fallback ke 'sandbox'", MidtransEnv)
		MidtransEnv = "sandbox"
	}

	switch GradingTotalMode {
	case "", "answered":
		GradingTotalMode = "answered"
	case "all":
		// strict: total dihitung dari seluruh soal
	default:
		log.Printf("⚠️ GRADING_TOTAL_MODE tidak dikenal (%q), fallback ke 'answered'", GradingTotalMode)
		GradingTotalMode = "answered"
	}
}

func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvOr(key, def string) string {
	if v := GetEnv(key); v != "" {
		return v
	}
	return def
}
