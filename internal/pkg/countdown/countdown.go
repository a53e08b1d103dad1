// Package countdown форматирует оставшееся время ожидания для клиента.
// Строки на немецком языке, как в интерфейсе приложения.
package countdown

import (
	"fmt"
	"time"
)

// FormatRemaining возвращает человекочитаемую строку оставшегося времени.
// Правила округления:
//   - меньше минуты: только секунды, округление вверх ("2 Sekunden");
//   - час и больше: часы + минуты, округление вниз ("1 Stunde 0 Minuten");
//   - иначе: минуты + секунды, округление вниз ("1 Minute 30 Sekunden").
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "0 Sekunden"
	}

	if d < time.Minute {
		// Округляем вверх: 1.5 секунды показываем как 2
		secs := int((d + time.Second - 1) / time.Second)
		return fmt.Sprintf("%d %s", secs, secondsWord(secs))
	}

	if d >= time.Hour {
		hours := int(d / time.Hour)
		minutes := int((d % time.Hour) / time.Minute)
		return fmt.Sprintf("%d %s %d %s", hours, hoursWord(hours), minutes, minutesWord(minutes))
	}

	minutes := int(d / time.Minute)
	secs := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d %s %d %s", minutes, minutesWord(minutes), secs, secondsWord(secs))
}

// FormatUntil возвращает строку оставшегося времени до момента until
func FormatUntil(until, now time.Time) string {
	return FormatRemaining(until.Sub(now))
}

func secondsWord(n int) string {
	if n == 1 {
		return "Sekunde"
	}
	return "Sekunden"
}

func minutesWord(n int) string {
	if n == 1 {
		return "Minute"
	}
	return "Minuten"
}

func hoursWord(n int) string {
	if n == 1 {
		return "Stunde"
	}
	return "Stunden"
}
