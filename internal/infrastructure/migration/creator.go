package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
	"unicode"
)

const versionWidth = 6

var migrationTemplate = template.Must(template.New("migration").Parse(`-- Migration: {{.Name}}{{if .Rollback}} (rollback){{end}}
-- Created: {{.Timestamp}}
{{- if .Description}}
-- {{.Description}}
{{- end}}

`))

// MigrationFile describes a generated up/down pair
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down pair numbered after the highest
// version already in migrationsDir.
func CreateMigration(migrationsDir, name, description string) (*MigrationFile, error) {
	slug := sanitizeName(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(migrationsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	next, err := nextVersion(migrationsDir)
	if err != nil {
		return nil, err
	}
	version := fmt.Sprintf("%0*d", versionWidth, next)
	base := version + "_" + slug

	mf := &MigrationFile{
		Version:     version,
		Name:        name,
		Description: description,
		UpPath:      filepath.Join(migrationsDir, base+".up.sql"),
		DownPath:    filepath.Join(migrationsDir, base+".down.sql"),
	}

	timestamp := time.Now().UTC().Format(time.RFC3339)
	if err := writeMigration(mf.UpPath, mf, timestamp, false); err != nil {
		return nil, fmt.Errorf("failed to create up migration: %w", err)
	}
	if err := writeMigration(mf.DownPath, mf, timestamp, true); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("failed to create down migration: %w", err)
	}
	return mf, nil
}

// ListMigrations returns the base names of every up migration, in version order
func ListMigrations(migrationsDir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, path := range matches {
		names = append(names, strings.TrimSuffix(filepath.Base(path), ".up.sql"))
	}
	sort.Strings(names)
	return names, nil
}

func nextVersion(migrationsDir string) (int, error) {
	names, err := ListMigrations(migrationsDir)
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, name := range names {
		prefix, _, _ := strings.Cut(name, "_")
		if v, err := strconv.Atoi(prefix); err == nil && v > highest {
			highest = v
		}
	}
	return highest + 1, nil
}

func writeMigration(path string, mf *MigrationFile, timestamp string, rollback bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return migrationTemplate.Execute(f, struct {
		*MigrationFile
		Timestamp string
		Rollback  bool
	}{mf, timestamp, rollback})
}

// sanitizeName lower-cases name and joins its alphanumeric runs with "_"
func sanitizeName(name string) string {
	words := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return r == ' ' || r == '-' || r == '_'
	})
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.Map(func(r rune) rune {
			if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
				return r
			}
			return -1
		}, w)
		if w != "" {
			cleaned = append(cleaned, w)
		}
	}
	return strings.Join(cleaned, "_")
}
