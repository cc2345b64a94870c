package db

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/matanjerbi/downloder-telegram-bot/pkg/config"
	"github.com/matanjerbi/downloder-telegram-bot/pkg/core/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Database encapsulates the MongoDB connection, collections, and caches.
type Database struct {
	Client    *mongo.Client
	DB        *mongo.Database
	ChatDB    *mongo.Collection
	UserDB    *mongo.Collection
	ChatCache *cache.Cache[map[string]interface{}]
	UserCache *cache.Cache[map[string]interface{}]
}

// Instance is the global singleton for the database.
var Instance *Database

// InitDatabase initializes the database connection and sets up the global instance.
// It returns an error if the connection fails or pinging the database is unsuccessful.
func InitDatabase(ctx context.Context) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.Conf.MongoUri))
	if err != nil {
		return err
	}

	db := client.Database(config.Conf.DbName)

	Instance = &Database{
		Client:    client,
		DB:        db,
		ChatDB:    db.Collection("chats"),
		UserDB:    db.Collection("users"),
		ChatCache: cache.NewCache[map[string]interface{}](20*time.Minute, 4096),
		UserCache: cache.NewCache[map[string]interface{}](20*time.Minute, 8192),
	}

	if err := Instance.Ping(ctx); err != nil {
		return err
	}

	log.Println("[DB] The database connection has been successfully established.")
	return nil
}

// Ping verifies the connection to the MongoDB server.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, nil)
}

// ----------------- CHAT -----------------

// GetChat retrieves a chat's data from the cache or database.
// It returns a map representing the chat data, or nil if not found.
func (db *Database) GetChat(ctx context.Context, chatID int64) (map[string]interface{}, error) {
	key := toKey(chatID)
	if cached, ok := db.ChatCache.Get(key); ok {
		return cached, nil
	}

	var chat map[string]interface{}
	err := db.ChatDB.FindOne(ctx, bson.M{"_id": chatID}).Decode(&chat)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	} else if err != nil {
		log.Printf("[DB] An error occurred while getting the chat: %v", err)
		return nil, err
	}

	db.ChatCache.Set(key, chat)
	return chat, nil
}

// AddChat adds a new chat to the database if it does not already exist.
func (db *Database) AddChat(ctx context.Context, chatID int64) error {
	chat, _ := db.GetChat(ctx, chatID)
	if chat != nil {
		return nil // Chat already exists.
	}
	_, err := db.ChatDB.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{"$setOnInsert": bson.M{}}, options.Update().SetUpsert(true))
	if err == nil {
		log.Printf("[DB] A new chat has been added: %d", chatID)
	}
	return err
}

// updateChatField updates a specific field in a chat's document.
func (db *Database) updateChatField(ctx context.Context, chatID int64, key string, value interface{}) error {
	_, err := db.ChatDB.UpdateOne(ctx, bson.M{"_id": chatID}, bson.M{"$set": bson.M{key: value}}, options.Update().SetUpsert(true))
	if err != nil {
		return err
	}
	cached, _ := db.ChatCache.Get(toKey(chatID))
	if cached == nil {
		cached = make(map[string]interface{})
	}
	cached[key] = value
	db.ChatCache.Set(toKey(chatID), cached)
	return nil
}

// GetLang retrieves the language code configured for a chat.
// It returns "en" by default.
func (db *Database) GetLang(ctx context.Context, chatID int64) string {
	chat, _ := db.GetChat(ctx, chatID)
	if chat == nil {
		return "en"
	}
	if val, ok := chat["lang"].(string); ok && val != "" {
		return val
	}
	return "en"
}

// SetLang sets the language code for a given chat.
func (db *Database) SetLang(ctx context.Context, chatID int64, langCode string) error {
	return db.updateChatField(ctx, chatID, "lang", langCode)
}

// ----------------- USERS -----------------

// AddUser adds a new user to the database if they do not already exist.
func (db *Database) AddUser(ctx context.Context, userID int64) error {
	key := toKey(userID)

	// Check cache first to avoid unnecessary database operations.
	if _, ok := db.UserCache.Get(key); ok {
		return nil
	}

	_, err := db.UserDB.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$setOnInsert": bson.M{}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return err
	}

	db.UserCache.Set(key, map[string]interface{}{})
	return nil
}

// RecordDownload increments a user's completed download counter.
func (db *Database) RecordDownload(ctx context.Context, userID int64) error {
	_, err := db.UserDB.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"downloads": 1}},
		options.Update().SetUpsert(true),
	)
	return err
}

// TotalDownloads sums the completed download counters across all users.
func (db *Database) TotalDownloads(ctx context.Context) (int64, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$downloads"}}},
		}}},
	}

	cursor, err := db.UserDB.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

// GetAllChats retrieves a list of all chat IDs from the database.
func (db *Database) GetAllChats(ctx context.Context) ([]int64, error) {
	return db.collectIDs(ctx, db.ChatDB, db.ChatCache)
}

// GetAllUsers retrieves a list of all user IDs from the database.
func (db *Database) GetAllUsers(ctx context.Context) ([]int64, error) {
	return db.collectIDs(ctx, db.UserDB, db.UserCache)
}

// collectIDs lists the _id of every document in a collection, caching
// each one to optimize future lookups.
func (db *Database) collectIDs(ctx context.Context, coll *mongo.Collection, c *cache.Cache[map[string]interface{}]) ([]int64, error) {
	cursor, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []int64
	for cursor.Next(ctx) {
		var doc struct {
			ID int64 `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
		c.Set(toKey(doc.ID), map[string]interface{}{})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// Close gracefully closes the database connection.
func (db *Database) Close(ctx context.Context) error {
	log.Println("[DB] Closing the database connection...")
	return db.Client.Disconnect(ctx)
}
