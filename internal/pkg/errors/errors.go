package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, повторная регистрация номера).
	ErrConflict = errors.New("resource state conflict")

	// ErrTooManyRequests используется при превышении лимита запросов (повторная отправка SMS-кода, brute-force защита).
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInvalidPhoneNumber используется, когда номер телефона не проходит валидацию.
	ErrInvalidPhoneNumber = errors.New("invalid phone number")

	// ErrInvalidCode используется, когда одноразовый код неверен, истёк или challenge не найден.
	ErrInvalidCode = errors.New("invalid verification code")

	// ErrImageTooLarge используется, когда встроенное изображение превышает лимит размера.
	ErrImageTooLarge = errors.New("image too large")

	// ErrInvalidFileType используется, когда загруженный файл не является поддерживаемым изображением.
	ErrInvalidFileType = errors.New("invalid file type")
)
