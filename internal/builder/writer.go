// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"greentree/internal/models"
	"greentree/internal/slug"
)

// CatalogSchemaVersion identifies the catalog file format. Loaders reject
// files with any other version.
const CatalogSchemaVersion = 1

// CatalogFileName is the name of the main catalog output file.
const CatalogFileName = "catalog.json"

// CatalogFile is the persisted envelope around the tree list.
type CatalogFile struct {
	SchemaVersion int           `json:"schemaVersion"`
	GeneratedAt   time.Time     `json:"generatedAt"`
	Trees         []models.Tree `json:"trees"`
}

// WriteCatalog persists the sorted catalog to dir atomically: the envelope
// is written to a temporary file in the same directory and renamed into
// place, so a failed run never leaves a truncated catalog behind.
func WriteCatalog(dir string, trees []models.Tree) (string, error) {
	envelope := CatalogFile{
		SchemaVersion: CatalogSchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		Trees:         trees,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal catalog: %w", err)
	}

	path := filepath.Join(dir, CatalogFileName)
	tmp, err := os.CreateTemp(dir, CatalogFileName+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp catalog: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("write temp catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close temp catalog: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("rename catalog into place: %w", err)
	}
	return path, nil
}

// AuditFileName returns the audit file name for a sheet, derived from the
// lowercased, hyphenated sheet name.
func AuditFileName(sheetName string) string {
	return fmt.Sprintf("raw-%s-data.json", slug.Generate(sheetName))
}

// WriteAudit persists a sheet's untransformed row grid for debugging.
// Audit files are a side output: written every build, never read back.
func WriteAudit(dir string, sheet Sheet) (string, error) {
	data, err := json.MarshalIndent(sheet.Rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal audit %q: %w", sheet.Name, err)
	}
	path := filepath.Join(dir, AuditFileName(sheet.Name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write audit %q: %w", sheet.Name, err)
	}
	return path, nil
}
