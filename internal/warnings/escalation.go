package warnings

import "time"

// EscalationAction es la sanción automática sugerida tras acumular
// advertencias activas
type EscalationAction string

const (
	EscalateNone    EscalationAction = "none"
	EscalateTimeout EscalationAction = "timeout"
	EscalateKick    EscalationAction = "kick"
	EscalateBan     EscalationAction = "ban"
)

// Escalation describes the sanction matching an active-warning count.
type Escalation struct {
	Action   EscalationAction
	Duration time.Duration
	Count    int
}

// umbrales de escalada; se evalúa el mayor alcanzado
var escalationLadder = []Escalation{
	{Action: EscalateBan, Count: 10},
	{Action: EscalateKick, Count: 7},
	{Action: EscalateTimeout, Duration: 24 * time.Hour, Count: 5},
	{Action: EscalateTimeout, Duration: time.Hour, Count: 3},
}

// EvaluateEscalation cuenta las advertencias activas de un usuario y devuelve
// la sanción automática que corresponde, si alguna
func (s *Store) EvaluateEscalation(guildID, userID string) (Escalation, error) {
	warns, err := s.GetUserWarnings(guildID, userID)
	if err != nil {
		return Escalation{Action: EscalateNone}, err
	}
	active := 0
	for i := range warns {
		if warns[i].Active() {
			active++
		}
	}
	for _, step := range escalationLadder {
		if active >= step.Count {
			out := step
			out.Count = active
			return out, nil
		}
	}
	return Escalation{Action: EscalateNone, Count: active}, nil
}
