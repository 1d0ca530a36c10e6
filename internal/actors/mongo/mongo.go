package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/model"
	"github.com/Roycs1998/new-back-lavc-sub001/internal/core/ports"
)

// Collection names.
const (
	CollectionPersons        = "persons"
	CollectionCompanies      = "companies"
	CollectionUsers          = "users"
	CollectionSpeakers       = "speakers"
	CollectionPaymentMethods = "payment_methods"
)

// Collection is a mongo adapter persisting one resource. It implements ports.EntityStore.
type Collection[E model.Entity] struct {
	collection  *mongo.Collection
	encode      func(baseDB, E) any
	decode      func(bson.Raw) (E, error)
	uniqueField string
	indexed     []string
	nowFunc     func() time.Time
}

// CollectionArgs are the mandatory arguments for the creation of a Collection.
type CollectionArgs struct {
	// Database hosts the collection.
	Database *mongo.Database
}

// CollectionOptArgs are the optional arguments for building a Collection.
type CollectionOptArgs = func(*collectionOptions)

type collectionOptions struct {
	nowFunc func() time.Time
}

// WithNowFunc can be used to override the nowFunc. Useful for testing.
func WithNowFunc(nowFunc func() time.Time) CollectionOptArgs {
	return func(o *collectionOptions) {
		o.nowFunc = nowFunc
	}
}

type resource[E model.Entity] struct {
	name        string
	encode      func(baseDB, E) any
	decode      func(bson.Raw) (E, error)
	uniqueField string
	indexed     []string
}

func newCollection[E model.Entity](args CollectionArgs, r resource[E], optArgs []CollectionOptArgs) (*Collection[E], error) {
	if args.Database == nil {
		return nil, errors.New("nil database passed to collection constructor")
	}
	opts := &collectionOptions{nowFunc: func() time.Time { return time.Now().UTC() }}
	for _, opt := range optArgs {
		opt(opts)
	}
	return &Collection[E]{
		collection:  args.Database.Collection(r.name),
		encode:      r.encode,
		decode:      r.decode,
		uniqueField: r.uniqueField,
		indexed:     r.indexed,
		nowFunc:     opts.nowFunc,
	}, nil
}

// NewPersonCollection creates the persons collection adapter.
func NewPersonCollection(args CollectionArgs, optArgs ...CollectionOptArgs) (*Collection[*model.Person], error) {
	return newCollection(args, resource[*model.Person]{
		name:        CollectionPersons,
		encode:      encodePerson,
		decode:      decoder((*personDB).toModel),
		uniqueField: model.PersonEmail,
		indexed:     []string{model.PersonCountry},
	}, optArgs)
}

// NewCompanyCollection creates the companies collection adapter.
func NewCompanyCollection(args CollectionArgs, optArgs ...CollectionOptArgs) (*Collection[*model.Company], error) {
	return newCollection(args, resource[*model.Company]{
		name:        CollectionCompanies,
		encode:      encodeCompany,
		decode:      decoder((*companyDB).toModel),
		uniqueField: model.CompanyContactEmail,
		indexed:     []string{model.CompanyTypeField},
	}, optArgs)
}

// NewUserCollection creates the users collection adapter.
func NewUserCollection(args CollectionArgs, optArgs ...CollectionOptArgs) (*Collection[*model.User], error) {
	return newCollection(args, resource[*model.User]{
		name:        CollectionUsers,
		encode:      encodeUser,
		decode:      decoder((*userDB).toModel),
		uniqueField: model.UserEmail,
		indexed:     []string{model.UserCompanyID, model.UserPersonID},
	}, optArgs)
}

// NewSpeakerCollection creates the speakers collection adapter.
func NewSpeakerCollection(args CollectionArgs, optArgs ...CollectionOptArgs) (*Collection[*model.Speaker], error) {
	return newCollection(args, resource[*model.Speaker]{
		name:    CollectionSpeakers,
		encode:  encodeSpeaker,
		decode:  decoder((*speakerDB).toModel),
		indexed: []string{model.SpeakerCompanyID, model.SpeakerPersonID},
	}, optArgs)
}

// NewPaymentMethodCollection creates the payment methods collection adapter.
func NewPaymentMethodCollection(args CollectionArgs, optArgs ...CollectionOptArgs) (*Collection[*model.PaymentMethod], error) {
	return newCollection(args, resource[*model.PaymentMethod]{
		name:    CollectionPaymentMethods,
		encode:  encodePaymentMethod,
		decode:  decoder((*paymentMethodDB).toModel),
		indexed: []string{model.PaymentMethodCompanyID},
	}, optArgs)
}

// Insert will save the entity in the database. It assigns the id and the timestamps.
func (c *Collection[E]) Insert(ctx context.Context, entity E) error {
	meta := entity.Meta()
	now := c.now()
	id := primitive.NewObjectID()
	if meta.EntityStatus == "" {
		meta.EntityStatus = model.StatusActive
	}
	meta.CreatedAt = now
	meta.UpdatedAt = now

	if _, err := c.collection.InsertOne(ctx, c.encode(toBaseDB(id, meta), entity)); err != nil {
		return mapWriteError(err)
	}
	meta.ID = id.Hex()
	return nil
}

// FindByID returns the entity. It returns model.ErrNotFound if the id is unknown, malformed or, unless
// includeDeleted is set, DELETED.
func (c *Collection[E]) FindByID(ctx context.Context, id string, includeDeleted bool) (E, error) {
	var zero E
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, model.ErrNotFound
	}
	filter := bson.D{{Key: "_id", Value: objectID}}
	if !includeDeleted {
		filter = append(filter, bson.E{Key: model.FieldEntityStatus, Value: liveStatus()})
	}
	raw, err := c.collection.FindOne(ctx, filter).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, model.ErrNotFound
		}
		return zero, err
	}
	return c.decode(raw)
}

// Exists reports whether a live entity other than query.ExcludeID holds the value.
func (c *Collection[E]) Exists(ctx context.Context, query ports.UniqueQuery) (bool, error) {
	filter := bson.D{
		{Key: query.Field, Value: query.Value},
		{Key: model.FieldEntityStatus, Value: liveStatus()},
	}
	if query.ExcludeID != "" {
		if objectID, err := primitive.ObjectIDFromHex(query.ExcludeID); err == nil {
			filter = append(filter, bson.E{Key: "_id", Value: bson.M{"$ne": objectID}})
		}
	}
	n, err := c.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update applies the patch to a live entity. It returns model.ErrNotFound if the entity does not exist
// or is DELETED.
func (c *Collection[E]) Update(ctx context.Context, id string, patch model.Patch) (E, error) {
	var zero E
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, model.ErrNotFound
	}

	set := make(bson.D, 0, len(patch)+1)
	for _, f := range patch {
		if model.IsManagedField(f.Name) {
			return zero, fmt.Errorf("field %s cannot be patched", f.Name)
		}
		set = append(set, bson.E{Key: f.Name, Value: f.Value})
	}
	set = append(set, bson.E{Key: model.FieldUpdatedAt, Value: c.now()})

	filter := bson.D{
		{Key: "_id", Value: objectID},
		{Key: model.FieldEntityStatus, Value: liveStatus()},
	}
	return c.findOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}})
}

// ChangeStatus moves the entity to change.Status in a single conditional write. When the entity already
// has the target status nothing is written and the current state is returned with changed set to false.
func (c *Collection[E]) ChangeStatus(ctx context.Context, id string, change model.StatusChange) (E, bool, error) {
	var zero E
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return zero, false, model.ErrNotFound
	}

	at := change.At.UTC().Truncate(time.Millisecond)
	filter := bson.D{
		{Key: "_id", Value: objectID},
		{Key: model.FieldEntityStatus, Value: bson.M{"$ne": string(change.Status)}},
	}
	set := bson.D{
		{Key: model.FieldEntityStatus, Value: string(change.Status)},
		{Key: model.FieldUpdatedAt, Value: at},
	}
	var update bson.D
	if change.Status == model.StatusDeleted {
		set = append(set, bson.E{Key: model.FieldDeletedAt, Value: at})
		if change.ActorID != "" {
			set = append(set, bson.E{Key: model.FieldDeletedBy, Value: change.ActorID})
		}
		update = bson.D{{Key: "$set", Value: set}}
	} else {
		update = bson.D{
			{Key: "$set", Value: set},
			{Key: "$unset", Value: bson.D{{Key: model.FieldDeletedAt, Value: ""}, {Key: model.FieldDeletedBy, Value: ""}}},
		}
	}

	entity, err := c.findOneAndUpdate(ctx, filter, update)
	if err == nil {
		return entity, true, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return zero, false, err
	}

	// either the id is unknown or the entity already has the target status
	current, err := c.FindByID(ctx, id, true)
	if err != nil {
		return zero, false, err
	}
	return current, false, nil
}

// List returns the page window of the entities matching the query and the total number of matches.
// Counting and fetching run concurrently.
func (c *Collection[E]) List(ctx context.Context, query model.ListQuery) ([]E, int64, error) {
	filter := buildFilter(query)
	opts := options.Find().
		SetSort(sortSpec(query)).
		SetSkip(query.Skip).
		SetLimit(int64(query.Limit))

	var (
		total int64
		items []E
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := c.collection.CountDocuments(gctx, filter)
		if err != nil {
			return fmt.Errorf("error counting documents: %w", err)
		}
		total = n
		return nil
	})
	g.Go(func() error {
		cursor, err := c.collection.Find(gctx, filter, opts)
		if err != nil {
			return fmt.Errorf("error finding documents: %w", err)
		}
		defer cursor.Close(gctx)
		for cursor.Next(gctx) {
			entity, err := c.decode(cursor.Current)
			if err != nil {
				return fmt.Errorf("error decoding document: %w", err)
			}
			items = append(items, entity)
		}
		return cursor.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (c *Collection[E]) findOneAndUpdate(ctx context.Context, filter, update bson.D) (E, error) {
	var zero E
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	raw, err := c.collection.FindOneAndUpdate(ctx, filter, update, opts).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, model.ErrNotFound
		}
		return zero, mapWriteError(err)
	}
	return c.decode(raw)
}

// now is truncated to the millisecond precision of BSON dates so that returned entities match the
// stored ones.
func (c *Collection[E]) now() time.Time {
	return c.nowFunc().UTC().Truncate(time.Millisecond)
}

func mapWriteError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", model.ErrConflict, err)
	}
	return err
}

// Connect opens a client and pings the primary.
func Connect(ctx context.Context, url string, timeout time.Duration) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("error pinging mongo: %w", err)
	}
	return client, nil
}
