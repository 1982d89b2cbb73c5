package formflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/inbal0012/wild-ginger-bot-sub001/pkg/db"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	COLLECTION_NAME_FORM_STATES = "formStates"
)

type FormFlowDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
}

func NewFormFlowDBService(configs db.DBConfig) (*FormFlowDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)

	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()

	if err != nil {
		return nil, err
	}

	formFlowDBSc := &FormFlowDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
	}

	if configs.RunIndexCreation {
		if err := formFlowDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for form flow DB", slog.String("error", err.Error()))
		}
	}

	return formFlowDBSc, nil
}

func (dbService *FormFlowDBService) getDBName() string {
	return dbService.DBNamePrefix + "formFlowDB"
}

func (dbService *FormFlowDBService) collectionFormStates() *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName()).Collection(COLLECTION_NAME_FORM_STATES)
}

func (dbService *FormFlowDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *FormFlowDBService) ensureIndexes() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	collection := dbService.collectionFormStates()

	existing, err := db.ListCollectionIndexes(ctx, collection)
	if err != nil {
		return err
	}
	if len(existing) > 1 {
		slog.Debug("formStates collection already has indexes", slog.Int("count", len(existing)))
	}

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "userID", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "completed", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "updatedAt", Value: 1},
			},
		},
	}
	_, err = collection.Indexes().CreateMany(ctx, indexes)
	return err
}
