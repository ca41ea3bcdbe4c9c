package genre

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// mappingDoc mirrors a single row of the genre_mappings collection.
type mappingDoc struct {
	SpecificGenre   string `bson:"specific_genre"`
	SimplifiedGenre string `bson:"simplified_genre"`
}

// Store loads the override table from MongoDB once at process start.
// It is the only piece of cross-run state the engine carries; everything
// else is scoped to a single generation run.
type Store struct {
	conn       *mongo.Client
	dbname     string
	log        *zap.Logger
}

// NewStore connects to the mapping database. Callers only need a Store
// when genre_mapping_overrides_enabled is set on at least one preset.
func NewStore(ctx context.Context, url, dbname string, log *zap.Logger) (*Store, error) {
	conn, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}
	return &Store{conn: conn, dbname: dbname, log: log}, nil
}

// LoadMappings reads the full genre_mappings collection into memory.
func (s *Store) LoadMappings(ctx context.Context) ([]Mapping, error) {
	coll := s.conn.Database(s.dbname).Collection("genre_mappings")
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Mapping, 0)
	for cur.Next(ctx) {
		var doc mappingDoc
		if err := cur.Decode(&doc); err != nil {
			s.log.Warn("failed to decode genre mapping", zap.Error(err))
			continue
		}
		out = append(out, Mapping{SpecificGenre: doc.SpecificGenre, SimplifiedGenre: doc.SimplifiedGenre})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.conn.Disconnect(ctx)
}
