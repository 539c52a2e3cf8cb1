package appeals

import (
	"fmt"
	"strings"
)

// Los custom IDs de botones y modales son el protocolo de cable entre la
// pulsación del botón y el envío del modal. Campos separados por "|",
// posicionales y sin versionado; el parser falla cerrado ante cualquier
// forma inesperada.
//
//	appeal|warn|<guildID>|<warnID>|<userID>
//	appeal|timeout|<guildID>|<violation>|<userID>
//	appealmodal|<warn|timeout>|<guildID>|<target>|<userID>|<appealID>
//	appealdec|<approve|deny>|<warn|timeout>|<guildID>|<target>|<userID>|<appealID>
//	appealfb|open|<guildID>|<appealID>|<userID>
//	appealfbmodal|<guildID>|<appealID>|<userID>
const customIDSep = "|"

// IntentKind identifica el tipo de interacción codificado en un custom ID
type IntentKind int

const (
	IntentUnknown IntentKind = iota
	IntentAppealButton
	IntentAppealModal
	IntentDecisionButton
	IntentFeedbackButton
	IntentFeedbackModal
)

// TargetKind distingue apelaciones de advertencias y de timeouts
type TargetKind string

const (
	TargetWarn    TargetKind = "warn"
	TargetTimeout TargetKind = "timeout"
)

// Intent es la variante decodificada de un custom ID
type Intent struct {
	Kind     IntentKind
	Target   TargetKind
	GuildID  string
	TargetID string // ID de advertencia, o texto de la violación para timeouts
	UserID   string
	AppealID string
	Approve  bool // solo para IntentDecisionButton
}

// ErrBadCustomID se devuelve ante cualquier custom ID con forma inesperada
var ErrBadCustomID = fmt.Errorf("custom id con formato desconocido")

// IsAppealCustomID reports whether a custom ID belongs to the appeal subsystem.
// Other components (role menus, etc.) are routed elsewhere.
func IsAppealCustomID(id string) bool {
	return strings.HasPrefix(id, "appeal")
}

// ParseCustomID decodes a pipe-delimited custom ID into an Intent.
// It fails closed: any missing field, empty field, or unknown verb
// returns ErrBadCustomID.
func ParseCustomID(id string) (Intent, error) {
	parts := strings.Split(id, customIDSep)
	for _, p := range parts {
		if p == "" {
			return Intent{}, ErrBadCustomID
		}
	}

	switch parts[0] {
	case "appeal":
		if len(parts) != 5 {
			return Intent{}, ErrBadCustomID
		}
		target, ok := parseTarget(parts[1])
		if !ok {
			return Intent{}, ErrBadCustomID
		}
		return Intent{
			Kind:     IntentAppealButton,
			Target:   target,
			GuildID:  parts[2],
			TargetID: parts[3],
			UserID:   parts[4],
		}, nil

	case "appealmodal":
		if len(parts) != 6 {
			return Intent{}, ErrBadCustomID
		}
		target, ok := parseTarget(parts[1])
		if !ok {
			return Intent{}, ErrBadCustomID
		}
		return Intent{
			Kind:     IntentAppealModal,
			Target:   target,
			GuildID:  parts[2],
			TargetID: parts[3],
			UserID:   parts[4],
			AppealID: parts[5],
		}, nil

	case "appealdec":
		if len(parts) != 7 {
			return Intent{}, ErrBadCustomID
		}
		if parts[1] != "approve" && parts[1] != "deny" {
			return Intent{}, ErrBadCustomID
		}
		target, ok := parseTarget(parts[2])
		if !ok {
			return Intent{}, ErrBadCustomID
		}
		return Intent{
			Kind:     IntentDecisionButton,
			Approve:  parts[1] == "approve",
			Target:   target,
			GuildID:  parts[3],
			TargetID: parts[4],
			UserID:   parts[5],
			AppealID: parts[6],
		}, nil

	case "appealfb":
		if len(parts) != 5 || parts[1] != "open" {
			return Intent{}, ErrBadCustomID
		}
		return Intent{
			Kind:     IntentFeedbackButton,
			GuildID:  parts[2],
			AppealID: parts[3],
			UserID:   parts[4],
		}, nil

	case "appealfbmodal":
		if len(parts) != 4 {
			return Intent{}, ErrBadCustomID
		}
		return Intent{
			Kind:     IntentFeedbackModal,
			GuildID:  parts[1],
			AppealID: parts[2],
			UserID:   parts[3],
		}, nil
	}

	return Intent{}, ErrBadCustomID
}

func parseTarget(s string) (TargetKind, bool) {
	switch TargetKind(s) {
	case TargetWarn, TargetTimeout:
		return TargetKind(s), true
	}
	return "", false
}

// Builders: mantienen el orden de campos del protocolo en un solo sitio

// AppealButtonID builds the custom ID for the appeal button attached to a
// warning or timeout notice.
func AppealButtonID(target TargetKind, guildID, targetID, userID string) string {
	return strings.Join([]string{"appeal", string(target), guildID, targetID, userID}, customIDSep)
}

// AppealModalID builds the custom ID for the appeal modal, embedding the
// generated appeal ID so the submit step is self-describing.
func AppealModalID(target TargetKind, guildID, targetID, userID, appealID string) string {
	return strings.Join([]string{"appealmodal", string(target), guildID, targetID, userID, appealID}, customIDSep)
}

// DecisionButtonID builds the custom ID for a moderator decision button.
func DecisionButtonID(approve bool, target TargetKind, guildID, targetID, userID, appealID string) string {
	verb := "deny"
	if approve {
		verb = "approve"
	}
	return strings.Join([]string{"appealdec", verb, string(target), guildID, targetID, userID, appealID}, customIDSep)
}

// FeedbackButtonID builds the custom ID for the post-decision feedback button.
func FeedbackButtonID(guildID, appealID, userID string) string {
	return strings.Join([]string{"appealfb", "open", guildID, appealID, userID}, customIDSep)
}

// FeedbackModalID builds the custom ID for the feedback modal.
func FeedbackModalID(guildID, appealID, userID string) string {
	return strings.Join([]string{"appealfbmodal", guildID, appealID, userID}, customIDSep)
}
