// Package index stores secondary index entries (storagemodels.IndexColumn) in a
// single sorted row so equality lookups are prefix scans and range lookups are
// column slices.
package index
