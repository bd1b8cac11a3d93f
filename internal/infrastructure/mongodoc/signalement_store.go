package mongodoc

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	appsync "github.com/tahiry-dev/lalana-api/internal/application/sync"
)

const (
	signalementsCollection = "signalements"
	crossRefField          = "idSignalement"
)

// Ensure SignalementStore implements sync.DocumentStore.
var _ appsync.DocumentStore = (*SignalementStore)(nil)

// SignalementStore colección de signalements del almacén de documentos.
type SignalementStore struct {
	coll *mongo.Collection
}

// NewSignalementStore construye el adaptador sobre la base dada.
func NewSignalementStore(client *mongo.Client, database string) *SignalementStore {
	return &SignalementStore{coll: client.Database(database).Collection(signalementsCollection)}
}

// ListAll devuelve todos los documentos de la colección con su ID opaco
// separado del payload.
func (s *SignalementStore) ListAll(ctx context.Context) ([]appsync.Document, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("listando documentos: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []appsync.Document
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decodificando documento: %w", err)
		}
		doc := appsync.Document{Data: map[string]interface{}(raw)}
		if id, ok := raw["_id"]; ok {
			doc.DocID = docIDToString(id)
			delete(raw, "_id")
		}
		docs = append(docs, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("recorriendo documentos: %w", err)
	}
	return docs, nil
}

// UpsertByCrossRef hace update-merge del documento cuyo idSignalement coincide
// (guardado como número o como string, según el cliente que lo escribió), o lo
// crea si no existe.
func (s *SignalementStore) UpsertByCrossRef(ctx context.Context, crossRef int64, update appsync.DocumentUpdate) error {
	filter := bson.M{"$or": bson.A{
		bson.M{crossRefField: crossRef},
		bson.M{crossRefField: strconv.FormatInt(crossRef, 10)},
	}}

	set := bson.M{crossRefField: crossRef}
	for k, v := range update.Set {
		set[k] = v
	}
	mongoUpdate := bson.M{"$set": set}
	if len(update.SetOnInsert) > 0 {
		mongoUpdate["$setOnInsert"] = bson.M(update.SetOnInsert)
	}

	_, err := s.coll.UpdateOne(ctx, filter, mongoUpdate, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert por idSignalement=%d: %w", crossRef, err)
	}
	return nil
}

// SetCrossRef estampa el ID canónico sobre un documento existente.
func (s *SignalementStore) SetCrossRef(ctx context.Context, docID string, crossRef int64) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": docIDFilter(docID)},
		bson.M{"$set": bson.M{crossRefField: crossRef}},
	)
	if err != nil {
		return fmt.Errorf("estampando idSignalement sobre %s: %w", docID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("documento %s no encontrado", docID)
	}
	return nil
}

// docIDToString vuelve portable el _id: ObjectID en hex, el resto en su forma
// de texto.
func docIDToString(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// docIDFilter reconstruye el _id desde su forma de texto.
func docIDFilter(docID string) interface{} {
	if oid, err := primitive.ObjectIDFromHex(docID); err == nil {
		return oid
	}
	return docID
}
