package handlers_fiber

import (
	"encoding/json"

	"pull-request-notifier/internal/entities"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// Client-to-server event names.
const (
	eventIntroduce = "client:introduce"
	eventRemind    = "client:remind"
)

type clientMessage struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

// UpgradeRequired guards the socket route: non-upgrade requests get 426.
func (h *Handler) UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Socket serves one websocket client: registers it with the hub and
// processes introduce/remind messages until the connection drops.
func (h *Handler) Socket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		id := h.hub.Register(conn)
		defer h.hub.Unregister(id)

		for {
			var msg clientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			switch msg.Event {
			case eventIntroduce:
				var identity string
				if err := json.Unmarshal(msg.Payload, &identity); err != nil || identity == "" {
					h.log.Warnw("bad introduce payload", "client", id)
					continue
				}
				h.notifier.Introduce(id, identity)
			case eventRemind:
				var pr entities.PullRequest
				if err := json.Unmarshal(msg.Payload, &pr); err != nil {
					h.log.Warnw("bad remind payload", "client", id)
					continue
				}
				h.notifier.Remind(pr)
			default:
				h.log.Infow("unknown client event", "client", id, "event", msg.Event)
			}
		}
	})
}
