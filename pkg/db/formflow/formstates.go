package formflow

import (
	"errors"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/net/context"

	formflowTypes "github.com/inbal0012/wild-ginger-bot-sub001/pkg/formflow/types"
)

func (dbService *FormFlowDBService) SaveFormState(state formflowTypes.FormState) (formflowTypes.FormState, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"userID": state.UserID}

	upsert := true
	after := options.After
	opt := options.FindOneAndReplaceOptions{
		Upsert:         &upsert,
		ReturnDocument: &after,
	}

	err := dbService.collectionFormStates().FindOneAndReplace(ctx, filter, state, &opt).Decode(&state)
	return state, err
}

func (dbService *FormFlowDBService) GetFormState(userID int64) (formflowTypes.FormState, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var state formflowTypes.FormState
	err := dbService.collectionFormStates().FindOne(ctx, bson.M{"userID": userID}).Decode(&state)
	return state, err
}

func (dbService *FormFlowDBService) DeleteFormState(userID int64) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionFormStates().DeleteOne(ctx, bson.M{"userID": userID})
	return err
}

func (dbService *FormFlowDBService) GetActiveFormStates() ([]formflowTypes.FormState, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	cursor, err := dbService.collectionFormStates().Find(ctx, bson.M{"completed": false})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	states := []formflowTypes.FormState{}
	if err := cursor.All(ctx, &states); err != nil {
		return nil, err
	}
	return states, nil
}

// Store adapts the DB service to the engine's FormStateStore contract,
// mapping driver errors onto the form flow error taxonomy.
type Store struct {
	db *FormFlowDBService
}

func NewStore(db *FormFlowDBService) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, userID int64) (*formflowTypes.FormState, error) {
	state, err := s.db.GetFormState(userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &formflowTypes.NotFoundError{Kind: "form state", Key: strconv.FormatInt(userID, 10)}
		}
		return nil, &formflowTypes.ExternalStoreError{Op: "get form state", Err: err}
	}
	state.Answers.Normalize()
	return &state, nil
}

func (s *Store) Put(ctx context.Context, state *formflowTypes.FormState) error {
	if _, err := s.db.SaveFormState(*state); err != nil {
		return &formflowTypes.ExternalStoreError{Op: "put form state", Err: err}
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, userID int64) error {
	if err := s.db.DeleteFormState(userID); err != nil {
		return &formflowTypes.ExternalStoreError{Op: "remove form state", Err: err}
	}
	return nil
}

func (s *Store) ListActive(ctx context.Context) ([]*formflowTypes.FormState, error) {
	states, err := s.db.GetActiveFormStates()
	if err != nil {
		return nil, &formflowTypes.ExternalStoreError{Op: "list form states", Err: err}
	}

	active := make([]*formflowTypes.FormState, len(states))
	for i := range states {
		states[i].Answers.Normalize()
		active[i] = &states[i]
	}
	return active, nil
}
