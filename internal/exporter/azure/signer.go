package azure

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/Kargones/hanadb-exporter/internal/constants"
)

// Signer подписывает запросы к HTTP Data Collector API схемой SharedKey.
// Ключ декодируется один раз при создании.
type Signer struct {
	workspaceID string
	key         []byte
}

// NewSigner создаёт Signer. sharedKey — ключ рабочей области в base64.
func NewSigner(workspaceID, sharedKey string) (*Signer, error) {
	if workspaceID == "" {
		return nil, ErrWorkspaceRequired
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimSpace(sharedKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSharedKey, err)
	}
	if len(key) == 0 {
		return nil, ErrInvalidSharedKey
	}
	return &Signer{workspaceID: workspaceID, key: key}, nil
}

// canonical собирает строку для подписи.
func canonical(contentLength int, date string) string {
	return "POST\n" + strconv.Itoa(contentLength) + "\n" + contentType + "\n" +
		dateHeader + ":" + date + "\n" + constants.AzureResource
}

// Sign возвращает base64 HMAC-SHA256 подпись для тела длины contentLength,
// отправляемого с заголовком x-ms-date равным date.
func (s *Signer) Sign(contentLength int, date string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(canonical(contentLength, date)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Authorization возвращает значение заголовка Authorization.
func (s *Signer) Authorization(contentLength int, date string) string {
	return "SharedKey " + s.workspaceID + ":" + s.Sign(contentLength, date)
}
