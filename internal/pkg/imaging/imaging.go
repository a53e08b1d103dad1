// Package imaging валидирует встроенные изображения вопросов.
// Изображение передаётся как base64 data URI и хранится в документе
// вопроса целиком, без выноса в файловое хранилище.
package imaging

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	apperrors "github.com/yourusername/rewardquiz-api/internal/pkg/errors"
)

// MaxImageBytes - максимальный размер декодированного изображения (1 MiB)
const MaxImageBytes = 1 << 20

// Поддерживаемые MIME-типы изображений
var allowedMIMETypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// ValidateDataURI проверяет, что строка является корректным data URI
// поддерживаемого типа изображения и не превышает MaxImageBytes.
func ValidateDataURI(dataURI string) error {
	if !strings.HasPrefix(dataURI, "data:") {
		return fmt.Errorf("%w: expected data URI", apperrors.ErrInvalidFileType)
	}

	rest := dataURI[len("data:"):]
	sep := strings.Index(rest, ",")
	if sep < 0 {
		return fmt.Errorf("%w: malformed data URI", apperrors.ErrInvalidFileType)
	}

	meta := rest[:sep]
	payload := rest[sep+1:]

	if !strings.HasSuffix(meta, ";base64") {
		return fmt.Errorf("%w: expected base64 encoding", apperrors.ErrInvalidFileType)
	}
	declaredMIME := strings.TrimSuffix(meta, ";base64")
	if !allowedMIMETypes[declaredMIME] {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidFileType, declaredMIME)
	}

	// Быстрая проверка до декодирования: длина base64 ограничивает
	// размер декодированных данных сверху (DecodedLen учитывает padding)
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+3 {
		return fmt.Errorf("%w: exceeds %d bytes", apperrors.ErrImageTooLarge, MaxImageBytes)
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: invalid base64 payload", apperrors.ErrInvalidFileType)
	}

	if len(decoded) > MaxImageBytes {
		return fmt.Errorf("%w: %d bytes exceeds limit of %d", apperrors.ErrImageTooLarge, len(decoded), MaxImageBytes)
	}

	// Заявленный MIME должен соответствовать фактическому содержимому
	detected := http.DetectContentType(decoded)
	if !allowedMIMETypes[detected] {
		return fmt.Errorf("%w: content detected as %s", apperrors.ErrInvalidFileType, detected)
	}

	return nil
}
