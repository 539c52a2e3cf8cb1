package warnings

import (
	"github.com/AmparoStudios/AmparoBotGo/pkg/database"
	"github.com/AmparoStudios/AmparoBotGo/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
)

// MongoRepository implementa Repository sobre el DataManager de la
// colección "warns"
type MongoRepository struct {
	DM *database.DataManager[models.WarnsDocument]
}

// NewMongoRepository crea un repositorio sobre el DataManager global
func NewMongoRepository() *MongoRepository {
	return &MongoRepository{DM: database.GlobalWarnDM}
}

func (r *MongoRepository) Load(guildID, userID string) (*models.WarnsDocument, error) {
	return r.DM.Get(bson.M{"guildId": guildID, "userId": userID})
}

func (r *MongoRepository) Save(doc *models.WarnsDocument) error {
	_, err := r.DM.Set(bson.M{"guildId": doc.GuildID, "userId": doc.UserID}, doc)
	return err
}

func (r *MongoRepository) LoadGuild(guildID string) ([]*models.WarnsDocument, error) {
	return r.DM.GetAll(bson.M{"guildId": guildID})
}

func (r *MongoRepository) Delete(guildID, userID string) error {
	return r.DM.Delete(bson.M{"guildId": guildID, "userId": userID})
}
