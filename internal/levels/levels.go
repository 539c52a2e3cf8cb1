// Package levels otorga XP por mensajes y calcula el nivel de cada usuario.
package levels

import (
	"math"
	"sync"
	"time"

	"github.com/AmparoStudios/AmparoBotGo/pkg/database"
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	// XP otorgado por mensaje y enfriamiento entre otorgamientos
	xpPerMessage    = 15
	awardCooldown   = 60 // segundos
	levelBase       = 100.0
	levelExponent   = 1.5
)

// Service administra el progreso de XP
type Service struct {
	dm  *database.DataManager[models.LevelsDocument]
	now func() time.Time
}

var (
	instance *Service
	once     sync.Once
)

// Init configura el servicio global de niveles
func Init() *Service {
	once.Do(func() {
		instance = &Service{dm: database.GlobalLevelsDM, now: time.Now}
	})
	return instance
}

// Get devuelve el servicio global de niveles
func Get() *Service {
	if instance == nil {
		panic("levels: service not initialized, call Init first")
	}
	return instance
}

// XPForLevel devuelve el XP acumulado necesario para alcanzar un nivel
func XPForLevel(level int) int64 {
	if level <= 0 {
		return 0
	}
	return int64(levelBase * math.Pow(float64(level), levelExponent))
}

// LevelForXP devuelve el nivel que corresponde a un total de XP
func LevelForXP(xp int64) int {
	level := 0
	for XPForLevel(level+1) <= xp {
		level++
	}
	return level
}

// AwardMessageXP otorga XP por un mensaje respetando el enfriamiento.
// Devuelve el documento actualizado y si el usuario subió de nivel.
func (s *Service) AwardMessageXP(guildID, userID string) (*models.LevelsDocument, bool, error) {
	query := bson.M{"guildId": guildID, "userId": userID}
	doc, err := s.dm.Get(query)
	if err != nil {
		return nil, false, err
	}
	if doc == nil {
		doc = &models.LevelsDocument{GuildID: guildID, UserID: userID}
	}

	nowSec := s.now().Unix()
	doc.Messages++
	if nowSec-doc.LastAward < awardCooldown {
		// sin XP dentro del enfriamiento, pero el contador de mensajes sube
		_, err = s.dm.Set(query, doc)
		return doc, false, err
	}

	doc.XP += xpPerMessage
	doc.LastAward = nowSec
	newLevel := LevelForXP(doc.XP)
	leveledUp := newLevel > doc.Level
	doc.Level = newLevel

	_, err = s.dm.Set(query, doc)
	return doc, leveledUp, err
}

// Progress devuelve el documento de un usuario, o un documento vacío si no
// tiene progreso todavía
func (s *Service) Progress(guildID, userID string) (*models.LevelsDocument, error) {
	doc, err := s.dm.Get(bson.M{"guildId": guildID, "userId": userID})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		doc = &models.LevelsDocument{GuildID: guildID, UserID: userID}
	}
	return doc, nil
}

// Top devuelve los usuarios con más XP de un servidor, ordenados de mayor a
// menor
func (s *Service) Top(guildID string, limit int) ([]*models.LevelsDocument, error) {
	docs, err := s.dm.GetAll(bson.M{"guildId": guildID})
	if err != nil {
		return nil, err
	}
	// ordenación por inserción; las listas son pequeñas
	for i := 1; i < len(docs); i++ {
		for j := i; j > 0 && docs[j].XP > docs[j-1].XP; j-- {
			docs[j], docs[j-1] = docs[j-1], docs[j]
		}
	}
	if limit > 0 && len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}
