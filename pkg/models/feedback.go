package models

// MaxFeedbackEntries es el máximo de entradas retenidas en el log de feedback.
// Al superarlo se descartan las más antiguas.
const MaxFeedbackEntries = 200

// FeedbackEntry representa una valoración enviada tras una decisión de apelación
type FeedbackEntry struct {
	ID          string `bson:"id" json:"id"`
	AppealID    string `bson:"appealId" json:"appealId"`
	UserID      string `bson:"userId" json:"userId"`
	GuildID     string `bson:"guildId" json:"guildId"`
	GuildName   string `bson:"guildName" json:"guildName"`
	Rating      int    `bson:"rating" json:"rating"` // 1-5
	Experience  string `bson:"experience" json:"experience"`
	Suggestions string `bson:"suggestions,omitempty" json:"suggestions,omitempty"`
	Timestamp   int64  `bson:"timestamp" json:"timestamp"`
}

// FeedbackLog representa el documento único de la colección "feedback":
// una lista append-only con tope de MaxFeedbackEntries
type FeedbackLog struct {
	Key     string          `bson:"key" json:"key"` // siempre "global"
	Entries []FeedbackEntry `bson:"entries" json:"entries"`
}
