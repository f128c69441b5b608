package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/bluelinehq/police-records-api/config"
)

// Upload signs direct-upload requests for owner images and geofiles so the
// browser can push files straight to the CDN.
type Upload struct {
	Config config.Config
}

// SignatureHandler generates a signature for direct uploads
func (u Upload) SignatureHandler(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	h := hmac.New(sha1.New, []byte(u.Config.UploadSecret))
	h.Write([]byte("timestamp=" + timestamp + "&upload_preset=" + u.Config.UploadPreset))
	signature := hex.EncodeToString(h.Sum(nil))

	response := map[string]string{
		"timestamp": timestamp,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
