package config

import (
	"encoding/json"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/bluelinehq/police-records-api/models"
)

// Config holds the project config values
type Config struct {
	URL           string
	DatabaseName  string
	BaseURL       string
	Port          string
	SessionSecret string
	SendgridKey   string
	UploadSecret  string
	UploadPreset  string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger := zap.NewExample()
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "police-system-secret-key-2025"
	}

	return &Config{
		URL:           os.Getenv("DB_URI"),
		DatabaseName:  os.Getenv("DB_NAME"),
		BaseURL:       os.Getenv("BASE_URL"),
		Port:          os.Getenv("PORT"),
		SessionSecret: secret,
		SendgridKey:   os.Getenv("SENDGRID_API_KEY"),
		UploadSecret:  os.Getenv("UPLOAD_SIGNING_SECRET"),
		UploadPreset:  os.Getenv("UPLOAD_PRESET"),
	}

}

// ErrorStatus logs the underlying error and writes the http status code with
// a JSON body carrying the human-readable message. Internals never reach the
// client; the message is what form error banners display verbatim.
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	b, _ := json.Marshal(models.ErrorResponse{Message: message})
	w.Write(b)
}
