package config

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
	"golang.org/x/sync/singleflight"
)

// DatabaseCache lazily establishes one MongoDB connection and memoizes it for
// the lifetime of the process. Concurrent callers during the initial connect
// share a single in-flight attempt; a failed attempt is not cached, so the
// next caller retries from scratch.
type DatabaseCache struct {
	uri    string
	dbName string

	mu     sync.RWMutex
	db     *mongo.Database
	flight singleflight.Group
}

// NewDatabaseCache creates a cache for the given connection string. No
// connection is attempted until the first Acquire.
func NewDatabaseCache(uri, dbName string) *DatabaseCache {
	return &DatabaseCache{uri: uri, dbName: dbName}
}

// Acquire returns the shared database handle, connecting on first use.
func (c *DatabaseCache) Acquire(ctx context.Context) (*mongo.Database, error) {
	c.mu.RLock()
	db := c.db
	c.mu.RUnlock()
	if db != nil {
		return db, nil
	}

	v, err, _ := c.flight.Do("connect", func() (interface{}, error) {
		db, err := c.connect(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.db = db
		c.mu.Unlock()
		return db, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*mongo.Database), nil
}

func (c *DatabaseCache) connect(ctx context.Context) (*mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(c.uri).
		SetServerSelectionTimeout(5 * time.Second). // fail fast if no node responds
		SetMaxConnIdleTime(45 * time.Second).       // close sockets after 45s of inactivity
		SetMaxPoolSize(10).
		SetRetryWrites(true).
		SetWriteConcern(writeconcern.Majority())

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		// Tear the client down so a failed attempt does not leak sockets
		// or monitor goroutines.
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logrus.WithField("database", c.dbName).Info("Successfully connected to MongoDB!")
	return client.Database(c.dbName), nil
}
