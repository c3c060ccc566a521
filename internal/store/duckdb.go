package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-insights/internal/logger"
	"github.com/rxtech-lab/argo-insights/pkg/errors"
	"go.uber.org/zap"
)

// maxCollectionsListed caps the collection names reported by Diagnostics.
const maxCollectionsListed = 10

// DuckDBStore implements DocumentStore on an embedded DuckDB database.
// Documents are kept in a single table with the body serialized as JSON.
type DuckDBStore struct {
	db     *sql.DB
	path   string
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
	mu     sync.Mutex
}

// NewDuckDBStore opens (or creates) the DuckDB database at path and prepares
// the documents table. Use ":memory:" for an ephemeral store.
func NewDuckDBStore(path string, log *logger.Logger) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to open database", err)
	}

	if err := db.Ping(); err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, "failed to connect to database", err)
	}

	s := &DuckDBStore{
		db:     db,
		path:   path,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := s.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return s, nil
}

func (s *DuckDBStore) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			id VARCHAR PRIMARY KEY,
			collection VARCHAR NOT NULL,
			body JSON NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create documents table: %w", err)
	}

	return nil
}

// Create implements DocumentStore. The generated identifier is stored in its
// own column, never inside the body.
func (s *DuckDBStore) Create(ctx context.Context, collection string, doc Document) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCreateFailed, "failed to serialize document", err)
	}

	id := uuid.New().String()

	insertQuery := s.sq.
		Insert("documents").
		Columns("id", "collection", "body", "created_at").
		Values(id, collection, string(body), time.Now().UTC())

	query, args, err := insertQuery.ToSql()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCreateFailed, "failed to build insert query", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Error("failed to insert document",
			zap.String("collection", collection),
			zap.Error(err))

		return "", errors.Wrap(errors.ErrCodeCreateFailed, "failed to insert document", err)
	}

	return id, nil
}

// Query implements DocumentStore. The optional filter matches a top-level
// field of the JSON body by string equality.
func (s *DuckDBStore) Query(ctx context.Context, collection string, filter optional.Option[Filter], limit int) ([]Document, error) {
	selectQuery := s.sq.
		Select("id", "body").
		From("documents").
		Where(squirrel.Eq{"collection": collection}).
		OrderBy("created_at").
		Limit(uint64(limit))

	if filter.IsSome() {
		f := filter.Unwrap()
		path := fmt.Sprintf("$.%s", f.Field)
		selectQuery = selectQuery.Where(squirrel.Expr("json_extract_string(body, ?) = ?", path, f.Value))
	}

	query, args, err := selectQuery.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build select query", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.logger.Error("failed to query documents",
			zap.String("collection", collection),
			zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query documents", err)
	}

	defer rows.Close()

	docs := make([]Document, 0)

	for rows.Next() {
		var id, body string

		if err := rows.Scan(&id, &body); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan document row", err)
		}

		var doc Document
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to decode document body", err)
		}

		doc["id"] = id
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to read document rows", err)
	}

	return docs, nil
}

// Diagnostics implements DocumentStore.
func (s *DuckDBStore) Diagnostics(ctx context.Context) Diagnostics {
	diag := Diagnostics{
		Backend:          "running",
		Database:         "not available",
		ConnectionStatus: "Not Connected",
		DatabasePath:     s.path,
		Collections:      []string{},
	}

	if err := s.db.PingContext(ctx); err != nil {
		diag.Database = fmt.Sprintf("error: %v", err)

		return diag
	}

	diag.Database = "available"
	diag.ConnectionStatus = "Connected"

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT collection FROM documents ORDER BY collection LIMIT ?", maxCollectionsListed)
	if err != nil {
		diag.Database = fmt.Sprintf("connected but error: %v", err)

		return diag
	}

	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			diag.Database = fmt.Sprintf("connected but error: %v", err)

			return diag
		}

		diag.Collections = append(diag.Collections, name)
	}

	diag.Database = "connected and working"

	return diag
}

// Close implements DocumentStore.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}
