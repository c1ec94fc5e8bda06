/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Command rowscan prints the columns of one row stored in DynamoDB.
package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/suparena/columnorm"
	"github.com/suparena/columnorm/config"
	"github.com/suparena/columnorm/datastore/ddb"
	"github.com/suparena/columnorm/storagemodels"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "", "Path to a YAML config file")
	familyFlag  = flag.String("family", "", "Column family to read")
	keyFlag     = flag.String("key", "", "Row key")
	fromFlag    = flag.String("from", "", "First column of a slice (inclusive)")
	toFlag      = flag.String("to", "", "Last column of a slice (inclusive)")
	prefixFlag  = flag.String("prefix", "", "Only columns starting with this prefix")
	hexFlag     = flag.Bool("hex", false, "Keys are given and printed as hex")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		fmt.Println(columnorm.GetVersionInfo())
		os.Exit(0)
	}

	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "rowscan: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if *familyFlag == "" || *keyFlag == "" {
		flag.Usage()
		return fmt.Errorf("-family and -key are required")
	}
	if (*fromFlag == "") != (*toFlag == "") {
		return fmt.Errorf("-from and -to must be given together")
	}
	if *fromFlag != "" && *prefixFlag != "" {
		return fmt.Errorf("-prefix cannot be combined with -from/-to")
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return err
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	key, err := decode(*keyFlag)
	if err != nil {
		return fmt.Errorf("invalid -key: %w", err)
	}

	store, err := ddb.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var cols []storagemodels.Column
	switch {
	case *fromFlag != "":
		from, err := decode(*fromFlag)
		if err != nil {
			return fmt.Errorf("invalid -from: %w", err)
		}
		to, err := decode(*toFlag)
		if err != nil {
			return fmt.Errorf("invalid -to: %w", err)
		}
		cols, err = store.ColumnSlice(ctx, *familyFlag, key, from, to)
		if err != nil {
			return err
		}
	default:
		prefix, err := decode(*prefixFlag)
		if err != nil {
			return fmt.Errorf("invalid -prefix: %w", err)
		}
		cols, err = store.ColumnsByPrefix(ctx, *familyFlag, key, prefix)
		if err != nil {
			return err
		}
	}

	for _, col := range cols {
		ts := "-"
		if col.Timestamp != nil {
			ts = strconv.FormatInt(*col.Timestamp, 10)
		}
		fmt.Printf("%s\t%s\t%s\n", encode(col.Name), encode(col.Value), ts)
	}
	logger.Debug("scan finished", "family", *familyFlag, "columns", len(cols))
	return nil
}

func decode(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	if *hexFlag {
		return hex.DecodeString(s)
	}
	return []byte(s), nil
}

func encode(b []byte) string {
	if *hexFlag {
		return hex.EncodeToString(b)
	}
	return strconv.Quote(string(b))
}
