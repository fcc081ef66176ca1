package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// Export sink
	BlobDriver    string // fs|s3|memory
	BlobFSRoot    string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3Prefix      string
	S3AccessKey   string
	S3SecretKey   string
	S3PathStyle   bool
	MaxUploadSize int64 // bytes accepted when opening a plan

	// Admin unlock
	AdminPasscodeHash string // bcrypt hash
	AdminTokenTTL     time.Duration

	// JWT / keys
	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTIssuer         string

	// LDAP, disabled while LDAPServer is empty
	LDAPServer   string
	LDAPBindDN   string
	LDAPBindPass string
	LDAPBaseDN   string
	LDAPUserAttr string
	LDAPTimeout  time.Duration

	AllowedOrigins []string
}

// Load reads .env (when present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	tokenMin, _ := strconv.Atoi(getEnv("ADMIN_TOKEN_MINUTES", "30"))
	ldapSec, _ := strconv.Atoi(getEnv("LDAP_TIMEOUT_SECONDS", "5"))
	maxUpload, _ := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "20971520"), 10, 64)

	allowedOrigins := strings.Split(
		getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		",",
	)

	return &Config{
		Port:        getEnv("APP_PORT", "8780"),
		Environment: getEnv("ENVIRONMENT", "development"),

		BlobDriver:    getEnv("BLOB_DRIVER", "fs"),
		BlobFSRoot:    getEnv("BLOB_FS_ROOT", "./exports"),
		S3Bucket:      getEnv("BLOB_S3_BUCKET", ""),
		S3Region:      getEnv("BLOB_S3_REGION", "us-east-1"),
		S3Endpoint:    getEnv("BLOB_S3_ENDPOINT", ""),
		S3Prefix:      getEnv("BLOB_S3_PREFIX", ""),
		S3AccessKey:   getEnv("BLOB_S3_ACCESS_KEY", ""),
		S3SecretKey:   getEnv("BLOB_S3_SECRET_KEY", ""),
		S3PathStyle:   getEnvAsBool("BLOB_S3_PATH_STYLE", false),
		MaxUploadSize: maxUpload,

		AdminPasscodeHash: getEnv("ADMIN_PASSCODE_HASH", ""),
		AdminTokenTTL:     time.Duration(tokenMin) * time.Minute,

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "keys/jwt_private.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "keys/jwt_public.pem"),
		JWTIssuer:         getEnv("JWT_ISSUER", "gsep-planner"),

		LDAPServer:   getEnv("LDAP_SERVER", ""),
		LDAPBindDN:   getEnv("LDAP_BIND_DN", ""),
		LDAPBindPass: getEnv("LDAP_BIND_PASS", ""),
		LDAPBaseDN:   getEnv("LDAP_BASE_DN", ""),
		LDAPUserAttr: getEnv("LDAP_USER_ATTR", "sAMAccountName"),
		LDAPTimeout:  time.Duration(ldapSec) * time.Second,

		AllowedOrigins: allowedOrigins,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valStr := os.Getenv(key)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("invalid bool for %s, defaulting to %v\n", key, fallback)
		return fallback
	}
	return val
}
