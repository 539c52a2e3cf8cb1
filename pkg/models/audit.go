package models

// AuditEntry representa una acción de moderación registrada en la colección "audit"
type AuditEntry struct {
	ID        string `bson:"id" json:"id"`
	GuildID   string `bson:"guildId" json:"guildId"`
	Action    string `bson:"action" json:"action"` // warn_add, appeal_approved, etc.
	Moderator string `bson:"moderator,omitempty" json:"moderator,omitempty"`
	Subject   string `bson:"subject,omitempty" json:"subject,omitempty"`
	Detail    string `bson:"detail,omitempty" json:"detail,omitempty"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}
