package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/photomarket/gateway/internal/core/domain"
)

const preferencesCollection = "user_preferences"

// PreferencesRepository persists per-user UI preferences keyed by the
// canonical user ID. Lives outside the session store so teardown never
// touches it.
type PreferencesRepository struct {
	coll *mongo.Collection
}

func NewPreferencesRepository(db *mongo.Database) *PreferencesRepository {
	return &PreferencesRepository{coll: db.Collection(preferencesCollection)}
}

func (r *PreferencesRepository) Get(ctx context.Context, userID string) (*domain.Preferences, error) {
	var prefs domain.Preferences
	if err := r.coll.FindOne(ctx, bson.M{"_id": userID}).Decode(&prefs); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("find preferences: %w", err)
	}
	return &prefs, nil
}

func (r *PreferencesRepository) Upsert(ctx context.Context, prefs *domain.Preferences) error {
	prefs.UpdatedAt = time.Now().UTC()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": prefs.UserID}, prefs, opts); err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}
