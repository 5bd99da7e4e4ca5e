package config

import (
	"os"
	"strconv"
	"time"
)

// Admission configures the daily registration cap check.
type Admission struct {
	DailyCap int
	Timezone string // IANA zone used to decide "today", e.g. Asia/Kolkata
}

// ImageKit configures the external payment-proof store.
type ImageKit struct {
	PublicKey      string
	PrivateKey     string
	UploadEndpoint string
	Folder         string
	CredentialTTL  time.Duration
	UploadTimeout  time.Duration
}

// Admin configures the shared admin credential pair and session signing.
type Admin struct {
	Username       string
	PasswordBcrypt string
	JWTSigningKey  string
}

// Notify configures the post-submission message handoff.
type Notify struct {
	WhatsAppNumber string
}

// Server captures process-level configuration assembled from the environment.
type Server struct {
	Addr          string
	DatabaseURL   string
	RedisAddr     string
	InsertTimeout time.Duration

	Admission Admission
	ImageKit  ImageKit
	Admin     Admin
	Notify    Notify
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:          getenv("CREASE_ADDR", ":8080"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		InsertTimeout: getduration("INSERT_TIMEOUT", 15*time.Second),
		Admission: Admission{
			DailyCap: getint("ADMISSION_DAILY_CAP", 4),
			Timezone: getenv("ADMISSION_TIMEZONE", "Asia/Kolkata"),
		},
		ImageKit: ImageKit{
			PublicKey:      os.Getenv("IMAGEKIT_PUBLIC_KEY"),
			PrivateKey:     os.Getenv("IMAGEKIT_PRIVATE_KEY"),
			UploadEndpoint: getenv("IMAGEKIT_UPLOAD_ENDPOINT", "https://upload.imagekit.io/api/v1/files/upload"),
			Folder:         getenv("IMAGEKIT_FOLDER", "/tournament-payments"),
			CredentialTTL:  getduration("IMAGEKIT_CREDENTIAL_TTL", 40*time.Minute),
			UploadTimeout:  getduration("IMAGEKIT_UPLOAD_TIMEOUT", 0),
		},
		Admin: Admin{
			Username:       os.Getenv("ADMIN_USERNAME"),
			PasswordBcrypt: os.Getenv("ADMIN_PASSWORD_BCRYPT"),
			JWTSigningKey:  os.Getenv("ADMIN_JWT_SIGNING_KEY"),
		},
		Notify: Notify{
			WhatsAppNumber: os.Getenv("NOTIFY_WHATSAPP_NUMBER"),
		},
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
