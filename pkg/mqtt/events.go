package mqtt

import (
	"fmt"

	"github.com/AmparoStudios/AmparoBotGo/pkg/logger"
)

// EventPublisher reenvía eventos del ciclo de vida de apelaciones al broker
// bajo amparo/appeals/<evento>. Best-effort: sin broker, los eventos se
// descartan con un aviso.
type EventPublisher struct {
	mc *MqttCommunicator
}

// NewEventPublisher crea un publicador sobre el comunicador global
func NewEventPublisher() *EventPublisher {
	return &EventPublisher{mc: Get()}
}

// Publish implementa el sink de eventos del motor de apelaciones
func (p *EventPublisher) Publish(event string, payload map[string]any) {
	if p.mc == nil || !p.mc.IsConnected() {
		return
	}
	topic := fmt.Sprintf("amparo/appeals/%s", event)
	if err := p.mc.Publish(topic, payload); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar el evento '%s' en MQTT: %v", event, err), "MQTT")
	}
}
