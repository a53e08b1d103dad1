package imaging

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
)

// Минимальный валидный PNG (1x1 пиксель)
var tinyPNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
	0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
	0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
	0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
	0x42, 0x60, 0x82,
}

func pngDataURI(data []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)
}

func TestValidateDataURI_ValidPNG(t *testing.T) {
	err := ValidateDataURI(pngDataURI(tinyPNG))
	assert.NoError(t, err)
}

func TestValidateDataURI_NotADataURI(t *testing.T) {
	err := ValidateDataURI("https://example.com/image.png")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestValidateDataURI_UnsupportedMIME(t *testing.T) {
	uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("%PDF-1.4"))
	err := ValidateDataURI(uri)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestValidateDataURI_MIMEMismatch(t *testing.T) {
	// Заявлен PNG, но содержимое - обычный текст
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("definitely not an image"))
	err := ValidateDataURI(uri)
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestValidateDataURI_TooLarge(t *testing.T) {
	// PNG-заголовок + паддинг сверх лимита
	oversized := make([]byte, MaxImageBytes+1)
	copy(oversized, tinyPNG)

	err := ValidateDataURI(pngDataURI(oversized))
	assert.ErrorIs(t, err, apperrors.ErrImageTooLarge)
}

func TestValidateDataURI_InvalidBase64(t *testing.T) {
	err := ValidateDataURI("data:image/png;base64,@@@not-base64@@@")
	assert.ErrorIs(t, err, apperrors.ErrInvalidFileType)
}

func TestValidateDataURI_SizeJustUnderLimit(t *testing.T) {
	// Декодированный размер ровно на лимите должен проходить проверку размера
	data := make([]byte, MaxImageBytes)
	copy(data, tinyPNG)
	uri := pngDataURI(data)

	err := ValidateDataURI(uri)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}
