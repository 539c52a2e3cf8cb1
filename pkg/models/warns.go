package models

// WarnSeverity representa la gravedad de una advertencia
type WarnSeverity string

const (
	SeverityMinor    WarnSeverity = "minor"
	SeverityModerate WarnSeverity = "moderate"
	SeveritySevere   WarnSeverity = "severe"
)

// Valid reporta si la gravedad es una de las tres conocidas
func (s WarnSeverity) Valid() bool {
	switch s {
	case SeverityMinor, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// AppealStatus representa el estado de una apelación sobre una advertencia
type AppealStatus string

const (
	AppealNone     AppealStatus = ""
	AppealPending  AppealStatus = "pending"
	AppealApproved AppealStatus = "approved"
	AppealDenied   AppealStatus = "denied"
)

// Decided reporta si la apelación ya tiene una decisión terminal
func (s AppealStatus) Decided() bool {
	return s == AppealApproved || s == AppealDenied
}

// Warn representa una advertencia individual
type Warn struct {
	ID        string       `bson:"id" json:"id"`
	Reason    string       `bson:"reason" json:"reason"`
	Severity  WarnSeverity `bson:"severity" json:"severity"`
	Moderator string       `bson:"moderator" json:"moderator"`
	Timestamp int64        `bson:"timestamp" json:"timestamp"`
	// ExpiresAt es 0 cuando la advertencia no caduca
	ExpiresAt int64 `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	Expired   bool  `bson:"expired" json:"expired"`
	Removed   bool  `bson:"removed" json:"removed"`

	// Campos de apelación (vacíos hasta que el usuario apela)
	AppealStatus   AppealStatus `bson:"appealStatus,omitempty" json:"appealStatus,omitempty"`
	AppealReason   string       `bson:"appealReason,omitempty" json:"appealReason,omitempty"`
	AppealEvidence string       `bson:"appealEvidence,omitempty" json:"appealEvidence,omitempty"`
	DecisionNote   string       `bson:"decisionNote,omitempty" json:"decisionNote,omitempty"`
	DecidedBy      string       `bson:"decidedBy,omitempty" json:"decidedBy,omitempty"`
	DecidedAt      int64        `bson:"decidedAt,omitempty" json:"decidedAt,omitempty"`
}

// Active reporta si la advertencia cuenta para la escalada automática
func (w *Warn) Active() bool {
	return !w.Removed && !w.Expired
}

// WarnsDocument representa el documento completo en la colección "warns"
// Esquema: guildId, userId, warns[]
type WarnsDocument struct {
	GuildID string `bson:"guildId" json:"guildId"`
	UserID  string `bson:"userId" json:"userId"`
	Warns   []Warn `bson:"warns" json:"warns"`
}
