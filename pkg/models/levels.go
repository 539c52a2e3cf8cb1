package models

// LevelsDocument representa el progreso de XP de un usuario en un servidor
type LevelsDocument struct {
	GuildID   string `bson:"guildId" json:"guildId"`
	UserID    string `bson:"userId" json:"userId"`
	XP        int64  `bson:"xp" json:"xp"`
	Level     int    `bson:"level" json:"level"`
	Messages  int64  `bson:"messages" json:"messages"`
	LastAward int64  `bson:"lastAward" json:"lastAward"` // epoch segundos del último XP otorgado
}
