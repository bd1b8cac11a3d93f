package mongodoc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tahiry-dev/lalana-api/internal/domain/repository"
)

const usersCollection = "users"

// Ensure UserMirror implements repository.UserMirror.
var _ repository.UserMirror = (*UserMirror)(nil)

// UserMirror espejo de cuentas en el almacén de documentos, indexado por el
// ID canónico de la cuenta.
type UserMirror struct {
	coll *mongo.Collection
}

// NewUserMirror construye el espejo sobre la base dada.
func NewUserMirror(client *mongo.Client, database string) *UserMirror {
	return &UserMirror{coll: client.Database(database).Collection(usersCollection)}
}

// Save inserta o actualiza el documento de la cuenta.
func (m *UserMirror) Save(ctx context.Context, uid string, data map[string]interface{}) error {
	set := bson.M{"updatedAt": time.Now().UTC().Format(time.RFC3339)}
	for k, v := range data {
		set[k] = v
	}
	update := bson.M{"$set": set}
	// createdAt solo en la inserción, salvo que el llamador lo fije él mismo.
	if _, ok := set["createdAt"]; !ok {
		update["$setOnInsert"] = bson.M{"createdAt": time.Now().UTC().Format(time.RFC3339)}
	}
	_, err := m.coll.UpdateOne(ctx, bson.M{"_id": uid}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("espejando cuenta %s: %w", uid, err)
	}
	return nil
}
