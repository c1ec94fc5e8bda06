/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/columnorm/row"
)

// Key condition expressions used against column tables.
const (
	rowKeyCondition    = "PK = :pk"
	sliceKeyCondition  = "PK = :pk AND SK BETWEEN :from AND :to"
	prefixKeyCondition = "PK = :pk AND begins_with(SK, :prefix)"
	keysProjection     = "PK, SK"
)

// condition selects the columns of one row.
type condition struct {
	expression string
	values     map[string]types.AttributeValue
	projection string
}

func rowCondition(key []byte) condition {
	return condition{
		expression: rowKeyCondition,
		values: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberB{Value: key},
		},
	}
}

func sliceCondition(key, from, to []byte) condition {
	return condition{
		expression: sliceKeyCondition,
		values: map[string]types.AttributeValue{
			":pk":   &types.AttributeValueMemberB{Value: key},
			":from": &types.AttributeValueMemberB{Value: from},
			":to":   &types.AttributeValueMemberB{Value: to},
		},
	}
}

func prefixCondition(key, prefix []byte) condition {
	return condition{
		expression: prefixKeyCondition,
		values: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberB{Value: key},
			":prefix": &types.AttributeValueMemberB{Value: prefix},
		},
	}
}

// readRow pages through the columns matched by cond and assembles them into
// a row. It returns nil when nothing matched.
func (s *Store) readRow(ctx context.Context, columnFamily string, key []byte, cond condition) (*row.SortedRow, error) {
	input := &sdk.QueryInput{
		TableName:                 aws.String(s.TableName(columnFamily)),
		KeyConditionExpression:    aws.String(cond.expression),
		ExpressionAttributeValues: cond.values,
		Limit:                     aws.Int32(s.options.PageSize),
		ConsistentRead:            aws.Bool(true),
	}
	if cond.projection != "" {
		input.ProjectionExpression = aws.String(cond.projection)
	}

	var r *row.SortedRow
	pages := 0
	for {
		out, err := s.queryWithRetry(ctx, input)
		if err != nil {
			return nil, err
		}
		pages++

		for _, raw := range out.Items {
			var item columnItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, fmt.Errorf("failed to unmarshal column item: %w", err)
			}
			if r == nil {
				r = row.New()
				r.SetKey(key)
			}
			if err := r.Put(item.SK, item.column()); err != nil {
				return nil, err
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	if pages > 1 {
		s.logger.Debug("row read in pages", "columnFamily", columnFamily, "pages", pages)
	}
	return r, nil
}

// queryWithRetry executes a query, retrying throttling and transient errors
// with a linear backoff.
func (s *Store) queryWithRetry(ctx context.Context, input *sdk.QueryInput) (*sdk.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= s.options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := s.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, fmt.Errorf("query on %s failed: %w", aws.ToString(input.TableName), err)
		}

		if attempt < s.options.MaxRetries {
			s.logger.Warn("retrying query",
				"table", aws.ToString(input.TableName), "attempt", attempt+1, "error", err)
			if err := s.sleep(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", s.options.MaxRetries, lastErr)
}

// batchWrite sends requests in chunks of BatchSize and re-sends unprocessed
// items until they are accepted or the retries run out.
func (s *Store) batchWrite(ctx context.Context, table string, requests []types.WriteRequest) error {
	for start := 0; start < len(requests); start += s.options.BatchSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := start + s.options.BatchSize
		if end > len(requests) {
			end = len(requests)
		}

		pending := map[string][]types.WriteRequest{table: requests[start:end]}
		for attempt := 0; ; attempt++ {
			out, err := s.client.BatchWriteItem(ctx, &sdk.BatchWriteItemInput{RequestItems: pending})
			if err != nil && !isRetryableError(err) {
				return fmt.Errorf("batch write on %s failed: %w", table, err)
			}
			if err == nil {
				pending = out.UnprocessedItems
				if len(pending[table]) == 0 {
					break
				}
			}

			if attempt >= s.options.MaxRetries {
				if err != nil {
					return fmt.Errorf("batch write failed after %d retries: %w", s.options.MaxRetries, err)
				}
				return fmt.Errorf("batch write on %s left %d unprocessed items after %d retries",
					table, len(pending[table]), s.options.MaxRetries)
			}
			s.logger.Warn("retrying batch write",
				"table", table, "attempt", attempt+1, "pending", len(pending[table]))
			if err := s.sleep(ctx, attempt); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Store) sleep(ctx context.Context, attempt int) error {
	backoff := time.Duration(attempt+1) * s.options.RetryBackoff
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoff):
		return nil
	}
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	switch {
	case stderrors.As(err, &throughput), stderrors.As(err, &limit), stderrors.As(err, &internal):
		return true
	}

	var retryable interface{ IsRetryable() bool }
	if stderrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}
