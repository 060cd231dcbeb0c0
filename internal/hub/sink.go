package hub

import (
	"encoding/json"

	"watchdo/internal/watcher"
)

// HandleEvent implements watcher.Sink: every classified event is broadcast
// to subscribed clients, with the event kind as the topic
func (h *Hub) HandleEvent(ev watcher.Event) {
	data, err := json.Marshal(map[string]string{
		"kind": string(ev.Kind),
		"path": ev.Path,
	})
	if err != nil {
		return
	}

	h.Broadcast(Message{
		Event: "change",
		Topic: string(ev.Kind),
		Data:  string(data),
	})
}
