// Copyright 2026 The tabkit authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package deltashare loads tables from a Delta Sharing server.
package deltashare

import (
	"context"
	"fmt"
	"log"

	delta_sharing "github.com/magpierre/go_delta_sharing_client"

	"tabkit/data"
)

// Target names one remote table within a sharing profile.
type Target struct {
	Share  string
	Schema string
	Table  string
}

// LoadOptions narrows what Load returns.
type LoadOptions struct {
	// Columns restricts the result to the named columns, in the given
	// order. Empty means all columns.
	Columns []string

	// Where filters rows with a query expression (see data.ParseQuery).
	Where string

	// Limit caps the number of rows. Values <= 0 mean no limit.
	Limit int64
}

// DefaultLoadOptions returns options that load everything.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{Limit: -1}
}

// ListTables walks the profile's shares and schemas and returns every
// reachable table target.
func ListTables(ctx context.Context, profile string) ([]Target, error) {
	ds, err := delta_sharing.NewSharingClientFromString(ctx, profile, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create sharing client: %w", err)
	}

	shares, err := ds.ListShares()
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}

	targets := make([]Target, 0)
	for _, share := range shares {
		schemas, err := ds.ListSchemas(share)
		if err != nil {
			return nil, fmt.Errorf("failed to list schemas in share %q: %w", share.Name, err)
		}
		for _, schema := range schemas {
			tables, err := ds.ListTables(schema)
			if err != nil {
				return nil, fmt.Errorf("failed to list tables in schema %q: %w", schema.Name, err)
			}
			for _, tbl := range tables {
				targets = append(targets, Target{Share: tbl.Share, Schema: tbl.Schema, Table: tbl.Name})
			}
		}
	}
	return targets, nil
}

// Load fetches one remote table and converts it to a data.Table, then
// applies the load options.
func Load(ctx context.Context, profile string, target Target, opts LoadOptions) (*data.Table, error) {
	ds, err := delta_sharing.NewSharingClientFromString(ctx, profile, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create sharing client: %w", err)
	}

	shares, err := ds.ListShares()
	if err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	for _, share := range shares {
		if share.Name != target.Share {
			continue
		}
		schemas, err := ds.ListSchemas(share)
		if err != nil {
			return nil, fmt.Errorf("failed to list schemas: %w", err)
		}
		for _, schema := range schemas {
			if schema.Name != target.Schema {
				continue
			}
			tables, err := ds.ListTables(schema)
			if err != nil {
				return nil, fmt.Errorf("failed to list tables: %w", err)
			}
			for _, tbl := range tables {
				if tbl.Name != target.Table {
					continue
				}
				resp, err := ds.ListFilesInTable(tbl)
				if err != nil {
					return nil, fmt.Errorf("failed to list files in table: %w", err)
				}
				if len(resp.AddFiles) == 0 {
					return nil, fmt.Errorf("no files available for table %q", target.Table)
				}

				fileID := resp.AddFiles[0].Id
				log.Printf("deltashare: loading %s.%s.%s file %s", target.Share, target.Schema, target.Table, fileID)
				arrowTable, err := delta_sharing.LoadArrowTable(ds, tbl, fileID)
				if err != nil {
					return nil, fmt.Errorf("failed to load arrow table: %w", err)
				}
				defer arrowTable.Release()

				t, err := data.FromArrowTable(arrowTable)
				if err != nil {
					return nil, err
				}
				return ApplyOptions(t, opts)
			}
		}
	}
	return nil, fmt.Errorf("table %s.%s.%s not found in share", target.Share, target.Schema, target.Table)
}

// ApplyOptions narrows a loaded table per the options: column selection,
// then row filtering, then the row limit.
func ApplyOptions(t *data.Table, opts LoadOptions) (*data.Table, error) {
	out := t
	if len(opts.Columns) > 0 {
		selected, err := out.Select(opts.Columns...)
		if err != nil {
			return nil, err
		}
		out = selected
	}
	if opts.Where != "" {
		filtered, err := out.Where(opts.Where)
		if err != nil {
			return nil, err
		}
		out = filtered
	}
	if opts.Limit > 0 && int64(out.Len()) > opts.Limit {
		limited, err := out.Slice(0, int(opts.Limit))
		if err != nil {
			return nil, err
		}
		out = limited
	}
	if out == t {
		out = t.Clone()
	}
	return out, nil
}
