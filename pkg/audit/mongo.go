package audit

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/slidelayout/pkg/errors"
)

// Default MongoDB locations used when the URL names none.
const (
	DefaultDatabase   = "slidelayout"
	DefaultCollection = "decisions"
)

// MongoSink inserts records as documents into a MongoDB collection.
type MongoSink struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// DialMongo connects to the deployment in rawURL. The URL path names the
// database and the "collection" query parameter the collection.
func DialMongo(ctx context.Context, rawURL string) (*MongoSink, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSink, err, "parse mongodb URL")
	}
	q := u.Query()
	collection := q.Get("collection")
	if collection == "" {
		collection = DefaultCollection
	}
	q.Del("collection")
	u.RawQuery = q.Encode()

	database := strings.Trim(u.Path, "/")
	if database == "" {
		database = DefaultDatabase
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(u.String()))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSink, err, "connect to mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "ping mongodb")
	}

	return NewMongoSink(client, database, collection), nil
}

// NewMongoSink wraps an existing client.
func NewMongoSink(client *mongo.Client, database, collection string) *MongoSink {
	return &MongoSink{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}
}

// Collection returns the target collection.
func (s *MongoSink) Collection() *mongo.Collection { return s.coll }

// Write inserts the batch with one unordered InsertMany. Records are keyed
// by ID, so when a retried attempt reports only duplicate keys the earlier
// attempt already landed those documents and the batch counts as written.
func (s *MongoSink) Write(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	docs := make([]interface{}, len(records))
	for i, rec := range records {
		docs[i] = rec
	}
	opts := options.InsertMany().SetOrdered(false)
	attempt := 0
	return retryWithBackoff(ctx, func() error {
		attempt++
		_, err := s.coll.InsertMany(ctx, docs, opts)
		return classifyInsert(err, attempt > 1)
	})
}

// classifyInsert maps an InsertMany error to nil, a retryable error or a
// terminal one.
func classifyInsert(err error, retried bool) error {
	switch {
	case err == nil:
		return nil
	case retried && onlyDuplicateKeys(err):
		return nil
	case mongo.IsNetworkError(err) || mongo.IsTimeout(err):
		return Retryable(err)
	default:
		return err
	}
}

// Server codes for duplicate key violations.
var duplicateKeyCodes = map[int]bool{11000: true, 11001: true, 12582: true}

// onlyDuplicateKeys reports whether every write error in err is a duplicate
// key and the write concern was satisfied.
func onlyDuplicateKeys(err error) bool {
	var bwe mongo.BulkWriteException
	if !stderrors.As(err, &bwe) {
		return false
	}
	if bwe.WriteConcernError != nil || len(bwe.WriteErrors) == 0 {
		return false
	}
	for _, we := range bwe.WriteErrors {
		if !duplicateKeyCodes[we.Code] {
			return false
		}
	}
	return true
}

// Name returns "mongodb".
func (s *MongoSink) Name() string { return "mongodb" }

// Close disconnects the client.
func (s *MongoSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ensure MongoSink implements Sink.
var _ Sink = (*MongoSink)(nil)
