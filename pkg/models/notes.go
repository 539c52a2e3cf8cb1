package models

// Note representa una nota personal de un usuario
type Note struct {
	ID        string `bson:"id" json:"id"`
	Content   string `bson:"content" json:"content"`
	Timestamp int64  `bson:"timestamp" json:"timestamp"`
}

// NotesDocument representa las notas de un usuario (globales, no por servidor)
type NotesDocument struct {
	UserID string `bson:"userId" json:"userId"`
	Notes  []Note `bson:"notes" json:"notes"`
}
