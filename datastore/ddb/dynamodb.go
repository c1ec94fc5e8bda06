/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/columnorm/config"
	"github.com/suparena/columnorm/datastore"
	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/row"
	"github.com/suparena/columnorm/storagemodels"
)

// Key attribute names of a column item.
const (
	attrRowKey    = "PK"
	attrColumnKey = "SK"
)

// columnItem is the DynamoDB item holding one column of one row.
type columnItem struct {
	PK []byte `dynamodbav:"PK"`
	SK []byte `dynamodbav:"SK"`
	V  []byte `dynamodbav:"V,omitempty"`
	TS *int64 `dynamodbav:"TS,omitempty"`
}

func (c columnItem) column() storagemodels.Column {
	return storagemodels.Column{Name: c.SK, Value: c.V, Timestamp: c.TS}
}

// Store implements datastore.RowStore on DynamoDB. Each column family is a
// table named TablePrefix+family whose items are the columns of its rows,
// partitioned by row key and sorted by column key.
type Store struct {
	client      Client
	tablePrefix string
	options     storagemodels.FetchOptions
	logger      *slog.Logger
}

var _ datastore.RowStore = (*Store)(nil)

// NewStore wraps an existing client.
func NewStore(client Client, tablePrefix string, logger *slog.Logger, opts ...storagemodels.FetchOption) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client:      client,
		tablePrefix: tablePrefix,
		options:     storagemodels.Apply(opts...),
		logger:      logger,
	}
}

// New connects to DynamoDB using cfg.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Store, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	if logger == nil {
		logger = cfg.NewLogger()
	}
	logger.Info("DynamoDB row store initialized",
		"region", cfg.Region, "tablePrefix", cfg.TablePrefix, "endpoint", cfg.Endpoint)
	return NewStore(client, cfg.TablePrefix, logger, cfg.FetchOptions()...), nil
}

// TableName returns the table backing a column family.
func (s *Store) TableName(columnFamily string) string {
	return s.tablePrefix + columnFamily
}

// FindAll runs one query per distinct key, at most MaxConcurrency at a time.
// The result has one pair per requested key in request order; rows without
// columns come back as nil.
func (s *Store) FindAll(ctx context.Context, columnFamily string, keys [][]byte) ([]storagemodels.KeyValue[*row.SortedRow], error) {
	for _, k := range keys {
		if len(k) == 0 {
			return nil, errors.NewValidationError("key", "row key must not be empty")
		}
	}

	distinct := make([][]byte, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[string(k)]; ok {
			continue
		}
		seen[string(k)] = struct{}{}
		distinct = append(distinct, k)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)
	found := make(map[string]*row.SortedRow, len(distinct))
	sem := make(chan struct{}, s.options.MaxConcurrency)

	for _, k := range distinct {
		wg.Add(1)
		go func(key []byte) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			r, err := s.readRow(ctx, columnFamily, key, rowCondition(key))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				return
			}
			if r != nil {
				found[string(key)] = r
			}
		}(k)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]storagemodels.KeyValue[*row.SortedRow], len(keys))
	handed := make(map[string]bool, len(found))
	for i, k := range keys {
		r := found[string(k)]
		if r != nil {
			// duplicated keys get their own copy
			if handed[string(k)] {
				r = r.Clone()
			}
			handed[string(k)] = true
		}
		result[i] = storagemodels.KeyValue[*row.SortedRow]{Key: append([]byte(nil), k...), Value: r}
	}

	s.logger.Debug("FindAll completed",
		"columnFamily", columnFamily, "keys", len(keys), "distinct", len(distinct))
	return result, nil
}

// GetRow returns a NotFoundError when the row has no columns.
func (s *Store) GetRow(ctx context.Context, columnFamily string, key []byte) (*row.SortedRow, error) {
	if len(key) == 0 {
		return nil, errors.NewValidationError("key", "row key must not be empty")
	}
	r, err := s.readRow(ctx, columnFamily, key, rowCondition(key))
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errors.NewNotFoundError("row", hex.EncodeToString(key))
	}
	return r, nil
}

// ColumnSlice returns the columns of a row with from <= name <= to.
func (s *Store) ColumnSlice(ctx context.Context, columnFamily string, key, from, to []byte) ([]storagemodels.Column, error) {
	if len(key) == 0 {
		return nil, errors.NewValidationError("key", "row key must not be empty")
	}
	if len(from) == 0 || len(to) == 0 {
		return nil, errors.NewValidationError("range", "column bounds must not be empty")
	}
	if row.MustByteKey(from).Compare(row.MustByteKey(to)) > 0 {
		return nil, nil
	}
	r, err := s.readRow(ctx, columnFamily, key, sliceCondition(key, from, to))
	if err != nil || r == nil {
		return nil, err
	}
	return r.Columns(), nil
}

// ColumnsByPrefix returns the columns of a row whose names start with prefix.
func (s *Store) ColumnsByPrefix(ctx context.Context, columnFamily string, key, prefix []byte) ([]storagemodels.Column, error) {
	if len(key) == 0 {
		return nil, errors.NewValidationError("key", "row key must not be empty")
	}
	cond := rowCondition(key)
	if len(prefix) > 0 {
		cond = prefixCondition(key, prefix)
	}
	r, err := s.readRow(ctx, columnFamily, key, cond)
	if err != nil || r == nil {
		return nil, err
	}
	return r.Columns(), nil
}

// PutRow writes every column of r. Columns already stored under other names
// are kept, so PutRow merges into the existing row.
func (s *Store) PutRow(ctx context.Context, columnFamily string, r *row.SortedRow) error {
	if r == nil {
		return errors.NewValidationError("row", "row must not be nil")
	}
	key := r.Key()
	if len(key) == 0 {
		return errors.NewValidationError("key", "row key must not be empty")
	}

	cols := r.Columns()
	requests := make([]types.WriteRequest, 0, len(cols))
	for _, col := range cols {
		if len(col.Name) == 0 {
			return errors.NewValidationError("column", "column key must not be empty")
		}
		item, err := attributevalue.MarshalMap(columnItem{PK: key, SK: col.Name, V: col.Value, TS: col.Timestamp})
		if err != nil {
			return fmt.Errorf("failed to marshal column: %w", err)
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	if err := s.batchWrite(ctx, s.TableName(columnFamily), requests); err != nil {
		return fmt.Errorf("PutRow failed: %w", err)
	}
	s.logger.Debug("row written", "columnFamily", columnFamily, "columns", len(cols))
	return nil
}

// DeleteRow removes every column of the row. Deleting a missing row is a no-op.
func (s *Store) DeleteRow(ctx context.Context, columnFamily string, key []byte) error {
	if len(key) == 0 {
		return errors.NewValidationError("key", "row key must not be empty")
	}

	cond := rowCondition(key)
	cond.projection = keysProjection
	r, err := s.readRow(ctx, columnFamily, key, cond)
	if err != nil {
		return err
	}
	if r == nil {
		return nil
	}

	requests := make([]types.WriteRequest, 0, r.Len())
	for _, col := range r.Columns() {
		requests = append(requests, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
			Key: map[string]types.AttributeValue{
				attrRowKey:    &types.AttributeValueMemberB{Value: key},
				attrColumnKey: &types.AttributeValueMemberB{Value: col.Name},
			},
		}})
	}

	if err := s.batchWrite(ctx, s.TableName(columnFamily), requests); err != nil {
		return fmt.Errorf("DeleteRow failed: %w", err)
	}
	return nil
}
