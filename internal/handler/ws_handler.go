package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"

	"github.com/yourusername/rewardquiz-api/internal/pkg/countdown"
	"github.com/yourusername/rewardquiz-api/internal/service"
	"github.com/yourusername/rewardquiz-api/pkg/auth"
)

// WSHandler обрабатывает WebSocket соединения обратного отсчёта
type WSHandler struct {
	playService *service.PlayService
	jwtService  *auth.JWTService

	allowedOrigins []string
}

// NewWSHandler создает новый обработчик WebSocket
func NewWSHandler(playService *service.PlayService, jwtService *auth.JWTService, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		playService:    playService,
		jwtService:     jwtService,
		allowedOrigins: allowedOrigins,
	}
}

// CountdownMessage - одно сообщение стрима обратного отсчёта.
// Remaining - человекочитаемая строка, например "1 Minute 30 Sekunden".
type CountdownMessage struct {
	Type        string    `json:"type"` // "countdown" | "ready"
	Until       time.Time `json:"until,omitempty"`
	RemainingMs int64     `json:"remaining_ms,omitempty"`
	Remaining   string    `json:"remaining,omitempty"`
}

func (h *WSHandler) upgrader() gorillaws.Upgrader {
	return gorillaws.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")

			// Пустой Origin - не браузерный клиент (мобильное приложение,
			// curl и т.д.), такие подключения разрешаем
			if origin == "" {
				return true
			}

			for _, allowed := range h.allowedOrigins {
				if origin == allowed {
					return true
				}
			}

			log.Printf("WebSocket: rejected unauthorized origin: %s", origin)
			return false
		},
	}
}

// HandleCooldown отдаёт стрим обратного отсчёта ожидания.
// Раз в секунду отправляется CountdownMessage с остатком; когда
// ожидание истекает, отправляется сообщение "ready" и соединение
// закрывается. Токен передаётся query-параметром - браузерный
// WebSocket API не позволяет выставить заголовок Authorization.
// GET /ws/cooldown?token=...
func (h *WSHandler) HandleCooldown(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token parameter"})
		return
	}

	claims, err := h.jwtService.ParseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WSHandler] Ошибка upgrade для user=%s: %v", claims.UserID, err)
		return
	}
	defer conn.Close()

	// Читатель нужен только для обработки close-фреймов от клиента
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ctx := c.Request.Context()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		until, active, err := h.playService.CooldownRemaining(claims.UserID)
		if err != nil {
			log.Printf("[WSHandler] Ошибка оценки ожидания user=%s: %v", claims.UserID, err)
			return
		}

		var msg CountdownMessage
		if active {
			now := time.Now()
			msg = CountdownMessage{
				Type:        "countdown",
				Until:       until,
				RemainingMs: until.Sub(now).Milliseconds(),
				Remaining:   countdown.FormatUntil(until, now),
			}
		} else {
			msg = CountdownMessage{Type: "ready"}
		}

		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(msg); err != nil {
			return
		}

		// После "ready" клиент запрашивает вопрос по HTTP
		if !active {
			conn.WriteControl(
				gorillaws.CloseMessage,
				gorillaws.FormatCloseMessage(gorillaws.CloseNormalClosure, "cooldown expired"),
				time.Now().Add(time.Second),
			)
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
