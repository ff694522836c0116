package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/growtlabs/growt/internal/domain/models"
)

// ErrDuplicateRFID signals an attempt to register an RFID tag twice.
var ErrDuplicateRFID = errors.New("rfid already registered")

// Repository defines the persistence operations backing the service. Reading
// rows come back pre-joined to the animal's static attributes so the
// analytics layer never touches the store shape directly.
type Repository interface {
	InsertWeighing(ctx context.Context, event models.WeighingEvent) error
	OwnerReadingRows(ctx context.Context, ownerID string) ([]models.RawReadingRow, error)
	PublicReadingRows(ctx context.Context) ([]models.RawReadingRow, error)
	AllReadingRows(ctx context.Context) ([]models.RawReadingRow, error)

	InsertAnimal(ctx context.Context, animal models.Animal) error
	AnimalsByOwner(ctx context.Context, ownerID string) ([]models.Animal, error)

	EnsureDevice(ctx context.Context, deviceID string) (models.Device, error)
	ListDevices(ctx context.Context, status models.DeviceStatus) ([]models.Device, error)
	SetDeviceStatus(ctx context.Context, deviceID string, status models.DeviceStatus) error
}

const (
	weighingsColl = "weighings"
	animalsColl   = "animals"
	devicesColl   = "devices"
)

// MongoDBRepository implements Repository on top of MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects, pings and prepares the unique indexes.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{client: client, dbName: dbName}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MongoDBRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.collection(animalsColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "rfid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create rfid index: %w", err)
	}

	_, err = r.collection(devicesColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "device_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create device_id index: %w", err)
	}
	return nil
}

func (r *MongoDBRepository) collection(name string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(name)
}

// InsertWeighing persists one immutable weighing event.
func (r *MongoDBRepository) InsertWeighing(ctx context.Context, event models.WeighingEvent) error {
	if _, err := r.collection(weighingsColl).InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert weighing: %w", err)
	}
	return nil
}

// readingRows runs the weighings-to-animals join. The $unwind keeps rows for
// unregistered RFIDs with a nil animal subdocument, which is exactly the
// nested, possibly-absent shape the analytics normalizer expects.
func (r *MongoDBRepository) readingRows(ctx context.Context, match bson.D) ([]models.RawReadingRow, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: animalsColl},
			{Key: "localField", Value: "rfid"},
			{Key: "foreignField", Value: "rfid"},
			{Key: "as", Value: "animal"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$animal"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	cursor, err := r.collection(weighingsColl).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reading rows: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.RawReadingRow
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode reading rows: %w", err)
	}
	return rows, nil
}

// OwnerReadingRows returns every joined reading row for one owner's herd.
func (r *MongoDBRepository) OwnerReadingRows(ctx context.Context, ownerID string) ([]models.RawReadingRow, error) {
	return r.readingRows(ctx, bson.D{{Key: "animal.owner_id", Value: ownerID}})
}

// PublicReadingRows returns joined rows for animals opted into public view.
func (r *MongoDBRepository) PublicReadingRows(ctx context.Context) ([]models.RawReadingRow, error) {
	return r.readingRows(ctx, bson.D{{Key: "animal.is_public", Value: true}})
}

// AllReadingRows returns every joined row, used by the scheduled herd report.
func (r *MongoDBRepository) AllReadingRows(ctx context.Context) ([]models.RawReadingRow, error) {
	return r.readingRows(ctx, nil)
}

// InsertAnimal registers a new animal; duplicate RFIDs map to ErrDuplicateRFID.
func (r *MongoDBRepository) InsertAnimal(ctx context.Context, animal models.Animal) error {
	if _, err := r.collection(animalsColl).InsertOne(ctx, animal); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRFID
		}
		return fmt.Errorf("failed to insert animal: %w", err)
	}
	return nil
}

// AnimalsByOwner lists an owner's registered animals.
func (r *MongoDBRepository) AnimalsByOwner(ctx context.Context, ownerID string) ([]models.Animal, error) {
	cursor, err := r.collection(animalsColl).Find(ctx, bson.D{{Key: "owner_id", Value: ownerID}})
	if err != nil {
		return nil, fmt.Errorf("failed to list animals: %w", err)
	}
	defer cursor.Close(ctx)

	var animals []models.Animal
	if err := cursor.All(ctx, &animals); err != nil {
		return nil, fmt.Errorf("failed to decode animals: %w", err)
	}
	return animals, nil
}

// EnsureDevice upserts a device record, registering unseen devices as pending.
func (r *MongoDBRepository) EnsureDevice(ctx context.Context, deviceID string) (models.Device, error) {
	now := time.Now().UTC()

	update := bson.D{{Key: "$setOnInsert", Value: bson.D{
		{Key: "device_id", Value: deviceID},
		{Key: "status", Value: models.DevicePending},
		{Key: "first_seen", Value: now},
		{Key: "updated_at", Value: now},
	}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var device models.Device
	err := r.collection(devicesColl).
		FindOneAndUpdate(ctx, bson.D{{Key: "device_id", Value: deviceID}}, update, opts).
		Decode(&device)
	if err != nil {
		return models.Device{}, fmt.Errorf("failed to upsert device: %w", err)
	}
	return device, nil
}

// ListDevices returns devices, optionally filtered by approval status.
func (r *MongoDBRepository) ListDevices(ctx context.Context, status models.DeviceStatus) ([]models.Device, error) {
	filter := bson.D{}
	if status != "" {
		filter = bson.D{{Key: "status", Value: status}}
	}

	cursor, err := r.collection(devicesColl).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	if err := cursor.All(ctx, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode devices: %w", err)
	}
	return devices, nil
}

// SetDeviceStatus moves a device through the approval flow.
func (r *MongoDBRepository) SetDeviceStatus(ctx context.Context, deviceID string, status models.DeviceStatus) error {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: status},
		{Key: "updated_at", Value: time.Now().UTC()},
	}}}

	result, err := r.collection(devicesColl).UpdateOne(ctx, bson.D{{Key: "device_id", Value: deviceID}}, update)
	if err != nil {
		return fmt.Errorf("failed to update device status: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("device %s not found", deviceID)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
