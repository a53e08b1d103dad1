package service

import (
	"math/rand"
	"time"

	"github.com/yourusername/rewardquiz-api/internal/domain/entity"
)

// PlayCooldown - длительность ожидания для политики per_minute
const PlayCooldown = time.Minute

// OutcomeStatus описывает результат оценки допуска
type OutcomeStatus string

const (
	// OutcomeCooldown - предыдущий правильный ответ ещё блокирует игру
	OutcomeCooldown OutcomeStatus = "cooldown"

	// OutcomeQuestion - пользователь допущен, вопрос выбран
	OutcomeQuestion OutcomeStatus = "question"

	// OutcomeNoQuestions - корпус вопросов пуст
	OutcomeNoQuestions OutcomeStatus = "no_questions"
)

// Outcome - результат оценки допуска пользователя к новому вопросу
type Outcome struct {
	Status        OutcomeStatus
	CooldownUntil time.Time        // заполнено при Status == OutcomeCooldown
	Question      *entity.Question // заполнено при Status == OutcomeQuestion

	// PoolExhausted - пользователь ответил на все вопросы, и выбор шёл
	// по полному корпусу. Вызывающая сторона обязана сбросить
	// answered_question_ids (см. PlayService.NextQuestion).
	PoolExhausted bool
}

// Evaluate решает, допущен ли пользователь к новому вопросу в момент now,
// и если да - выбирает вопрос. Чистая функция: никакого I/O, источник
// случайности передаётся явно.
//
// Конец ожидания вычисляется из ТЕКУЩЕЙ политики, а не той, что
// действовала в момент выигрыша: смена политики администратором
// действует немедленно при следующей оценке.
func Evaluate(user *entity.User, settings *entity.Settings, questions []entity.Question, now time.Time, rng *rand.Rand) Outcome {
	if cooldownEnd := CooldownEnd(user, settings); !cooldownEnd.IsZero() && now.Before(cooldownEnd) {
		return Outcome{Status: OutcomeCooldown, CooldownUntil: cooldownEnd}
	}

	if len(questions) == 0 {
		return Outcome{Status: OutcomeNoQuestions}
	}

	available := make([]entity.Question, 0, len(questions))
	for _, q := range questions {
		if !user.HasAnswered(q.ID) {
			available = append(available, q)
		}
	}

	// Исчерпание: пользователь ответил на всё, пул снова - весь корпус
	exhausted := false
	if len(available) == 0 {
		available = questions
		exhausted = true
	}

	selected := available[rng.Intn(len(available))]
	return Outcome{
		Status:        OutcomeQuestion,
		Question:      &selected,
		PoolExhausted: exhausted,
	}
}

// CooldownEnd вычисляет конец ожидания пользователя по текущей политике.
// Нулевое время означает, что ожидание не действует: пользователь ещё
// не играл либо для until_midnight отсутствует next_allowed_at
// (трактуется как уже истекшее).
func CooldownEnd(user *entity.User, settings *entity.Settings) time.Time {
	if !user.HasPlayed() {
		return time.Time{}
	}
	switch settings.CooldownPolicy {
	case entity.CooldownUntilMidnight:
		if user.NextAllowedAt != nil {
			return *user.NextAllowedAt
		}
		return time.Time{}
	default:
		return user.LastPlayedAt.Add(PlayCooldown)
	}
}

// NextMidnight возвращает ближайшую полночь строго после now (локальное
// время переданного момента). Используется при записи выигрыша для
// политики until_midnight.
func NextMidnight(now time.Time) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}
