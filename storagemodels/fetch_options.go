/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import "time"

// FetchOptions configures how a row store executes batch reads and writes
type FetchOptions struct {
	BatchSize      int           // Items per write batch (default: 25, the DynamoDB limit)
	PageSize       int32         // Columns per query page (default: 100)
	MaxConcurrency int           // Parallel row fetches (default: 4)
	MaxRetries     int           // Retry attempts for transient errors (default: 3)
	RetryBackoff   time.Duration // Backoff between retries (default: 200ms)
}

// FetchOption is a functional option for configuring fetches
type FetchOption func(*FetchOptions)

// DefaultFetchOptions returns default fetch options
func DefaultFetchOptions() FetchOptions {
	return FetchOptions{
		BatchSize:      25,
		PageSize:       100,
		MaxConcurrency: 4,
		MaxRetries:     3,
		RetryBackoff:   200 * time.Millisecond,
	}
}

// Limits enforced by Clamp.
const (
	MaxBatchSize   = 25 // BatchWriteItem accepts at most 25 requests
	MaxConcurrency = 64
)

// Apply returns the defaults with opts applied in order, clamped.
func Apply(opts ...FetchOption) FetchOptions {
	options := DefaultFetchOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Clamp()
	return options
}

// Clamp brings every setting into its accepted range. Out of range batch and
// page sizes and non-positive backoffs fall back to the defaults.
func (o *FetchOptions) Clamp() {
	d := DefaultFetchOptions()
	if o.BatchSize < 1 || o.BatchSize > MaxBatchSize {
		o.BatchSize = d.BatchSize
	}
	if o.PageSize < 1 {
		o.PageSize = d.PageSize
	}
	if o.MaxConcurrency < 1 {
		o.MaxConcurrency = 1
	}
	if o.MaxConcurrency > MaxConcurrency {
		o.MaxConcurrency = MaxConcurrency
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = d.RetryBackoff
	}
}

// WithBatchSize sets the write batch size
func WithBatchSize(size int) FetchOption {
	return func(opts *FetchOptions) {
		opts.BatchSize = size
	}
}

// WithPageSize sets the query page size
func WithPageSize(size int32) FetchOption {
	return func(opts *FetchOptions) {
		opts.PageSize = size
	}
}

// WithMaxConcurrency sets the maximum number of rows fetched in parallel
func WithMaxConcurrency(concurrency int) FetchOption {
	return func(opts *FetchOptions) {
		opts.MaxConcurrency = concurrency
	}
}

// WithMaxRetries sets the maximum retry attempts
func WithMaxRetries(retries int) FetchOption {
	return func(opts *FetchOptions) {
		opts.MaxRetries = retries
	}
}

// WithRetryBackoff sets the retry backoff duration
func WithRetryBackoff(backoff time.Duration) FetchOption {
	return func(opts *FetchOptions) {
		opts.RetryBackoff = backoff
	}
}
