package config

import (
	"os"
	"strconv"
	"strings"
)

// Well-known configuration keys. Upload locations are injected from here into
// the storage layer at construction; handlers never see a directory literal.
const (
	KeyPort           = "PORT"
	KeyStorageBackend = "STORAGE_BACKEND" // "fs" (default) or "s3"
	KeyUploadDir      = "UPLOAD_DIR"
	KeyS3Bucket       = "S3_BUCKET"
	KeyS3Region       = "S3_REGION"
	KeyS3Endpoint     = "S3_ENDPOINT"
	KeyS3AccessKey    = "S3_ACCESS_KEY_ID"
	KeyS3SecretKey    = "S3_SECRET_ACCESS_KEY"
	KeyJWTSecret      = "JWT_SECRET"
)

func New() map[string]string {
	environ := os.Environ()
	envAsMap := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry != "" {
			key, value := split(entry)
			envAsMap[key] = value
		}
	}
	return envAsMap
}

// assumes entry is not the empty string
func split(entry string) (key, value string) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) < 2 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func GetString(config map[string]string, key string, defaultValue string) string {
	if config == nil {
		return defaultValue
	}

	if val, ok := config[key]; ok {
		return val
	}
	return defaultValue
}

func GetInt(config map[string]string, key string, defaultValue int) int {
	if config == nil {
		return defaultValue
	}

	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asInt, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config map[string]string, key string, defaultValue bool) bool {
	s, ok := config[key]
	if !ok {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(s)
	if err != nil {
		return defaultValue
	}

	return asBool
}
