// Package firestore provides persistent storage implementations using Google Cloud Firestore.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/illmade-knight/hot-prospects/pkg/prospects"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// DefaultCollection is the collection prospects are stored in.
const DefaultCollection = "prospects"

// prospectDocument is the private struct for Firestore marshalling.
type prospectDocument struct {
	Position     int    `firestore:"position"`
	Name         string `firestore:"name"`
	EmailAddress string `firestore:"emailAddress"`
	IsContacted  bool   `firestore:"isContacted"`
}

// ProspectsStore is a concrete implementation of the prospects.Store interface using Firestore.
// Each prospect is one document keyed by its ID; a marker document records
// that a save has happened.
type ProspectsStore struct {
	client     *firestore.Client
	collection *firestore.CollectionRef
	marker     *firestore.DocumentRef
}

// NewProspectsStore creates a new Firestore-backed store for prospects.
func NewProspectsStore(client *firestore.Client, collection string) *ProspectsStore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &ProspectsStore{
		client:     client,
		collection: client.Collection(collection),
		marker:     client.Collection(collection + "-meta").Doc("snapshot"),
	}
}

// Load returns the saved prospects ordered by their saved position.
func (s *ProspectsStore) Load(ctx context.Context) ([]prospects.Prospect, error) {
	if _, err := s.marker.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, prospects.ErrNoData
		}
		return nil, err
	}
	iter := s.collection.OrderBy("position", firestore.Asc).Documents(ctx)
	return processProspectIterator(iter)
}

// Save replaces the collection in a single transaction: documents for
// prospects no longer present are deleted and every current prospect is set.
func (s *ProspectsStore) Save(ctx context.Context, people []prospects.Prospect) error {
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		keep := make(map[string]struct{}, len(people))
		for _, p := range people {
			keep[p.ID.String()] = struct{}{}
		}

		// All reads must happen before any writes in a transaction.
		existing, err := tx.Documents(s.collection).GetAll()
		if err != nil {
			return fmt.Errorf("failed to list existing prospects: %w", err)
		}

		for _, doc := range existing {
			if _, ok := keep[doc.Ref.ID]; !ok {
				if err := tx.Delete(doc.Ref); err != nil {
					return err
				}
			}
		}
		for i, p := range people {
			err := tx.Set(s.collection.Doc(p.ID.String()), prospectDocument{
				Position:     i,
				Name:         p.Name,
				EmailAddress: p.EmailAddress,
				IsContacted:  p.IsContacted,
			})
			if err != nil {
				return err
			}
		}
		return tx.Set(s.marker, map[string]interface{}{
			"count":   len(people),
			"savedAt": firestore.ServerTimestamp,
		})
	})
}

// --- Helper Functions ---
func processProspectIterator(iter *firestore.DocumentIterator) ([]prospects.Prospect, error) {
	defer iter.Stop()
	results := []prospects.Prospect{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var pd prospectDocument
		if err := doc.DataTo(&pd); err != nil {
			return nil, err
		}
		docID, err := uuid.Parse(doc.Ref.ID)
		if err != nil {
			return nil, err
		}
		results = append(results, prospects.Prospect{
			ID:           docID,
			Name:         pd.Name,
			EmailAddress: pd.EmailAddress,
			IsContacted:  pd.IsContacted,
		})
	}
	return results, nil
}
