package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// DefaultMaxVideoBytes caps uploaded intro videos at 500 MiB.
const DefaultMaxVideoBytes int64 = 500 << 20

// Config holds application configuration.
type Config struct {
	Port                  string
	Env                   string
	PublicBaseURL         string
	TrustForwardedHeaders bool
	MaxVideoBytes         int64
	CORSAllowOrigin       []string
	ObjectStoreType       string
	LocalStoreDir         string
	AWSRegion             string
	S3Bucket              string
	S3Prefix              string
	SSEKMSKeyID           string
	DatabaseURL           string
	QRLevel               string
	QRSize                int
	ResumeVerifyPDF       bool
	JWTSecret             string
	GenerateRatePerSec    float64
	GenerateBurst         int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	baseURL := strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL"))
	if env == "production" && baseURL == "" {
		log.Printf("PUBLIC_BASE_URL not set; public links will be derived from request host")
	}

	return Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   env,
		PublicBaseURL:         baseURL,
		TrustForwardedHeaders: getBool("TRUST_FORWARDED_HEADERS", false),
		MaxVideoBytes:         getInt64("MAX_VIDEO_BYTES", DefaultMaxVideoBytes),
		CORSAllowOrigin:       splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		ObjectStoreType:       normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:         getEnv("LOCAL_STORE_DIR", "./public"),
		AWSRegion:             getEnv("AWS_REGION", ""),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		S3Prefix:              getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:           getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		QRLevel:               strings.ToUpper(getEnv("QR_LEVEL", "M")),
		QRSize:                int(getInt64("QR_SIZE", 256)),
		ResumeVerifyPDF:       getBool("RESUME_VERIFY_PDF", false),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		GenerateRatePerSec:    getFloat("GENERATE_RATE_PER_SEC", 0.5),
		GenerateBurst:         int(getInt64("GENERATE_BURST", 5)),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("config %s invalid bool %q, using %v", key, raw, def)
		return def
	}
	return val
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid positive int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		log.Printf("config %s invalid number %q, using %v", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "memory":
		return "memory"
	default:
		return "local"
	}
}
