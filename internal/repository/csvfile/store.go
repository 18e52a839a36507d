// Package csvfile persists generated datasets as CSV files and reloads them
// for reuse across runs. A missing file or a file without the expected
// columns means "nothing to reuse", never a fatal error.
package csvfile

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kailas-cloud/logfaker/internal/domain"
)

// Default dataset file names.
const (
	CategoriesFile = "categories.csv"
	ContentsFile   = "contents.csv"
	UsersFile      = "users.csv"
	QueriesFile    = "queries.csv"
	LogsFile       = "logs.csv"
)

// Store reads and writes dataset CSV files under an output directory.
type Store struct {
	outputDir string // empty = current directory
}

// New creates a CSV store. Bare filenames resolve against outputDir; paths
// with directory components or absolute paths are used as-is.
func New(outputDir string) *Store {
	return &Store{outputDir: outputDir}
}

// Resolve applies the path resolution policy to the given path.
func (s *Store) Resolve(path string) string {
	if s.outputDir == "" {
		return path
	}
	if filepath.Base(path) != path {
		return path
	}
	return filepath.Join(s.outputDir, path)
}

// --- Export ---

func (s *Store) writeAll(path string, header []string, rows [][]string) error {
	full := s.Resolve(path)
	if dir := filepath.Dir(full); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("create %s: %w", full, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", full, err)
	}
	return f.Close()
}

// ExportCategories writes categories to CSV.
func (s *Store) ExportCategories(categories []domain.Category, path string) error {
	rows := make([][]string, len(categories))
	for i, c := range categories {
		rows[i] = []string{strconv.Itoa(c.ID), c.Name, c.Description}
	}
	return s.writeAll(path, []string{"Category ID", "Name", "Description"}, rows)
}

// ExportContents writes content entries to CSV.
func (s *Store) ExportContents(contents []domain.Content, path string) error {
	rows := make([][]string, len(contents))
	for i, c := range contents {
		rows[i] = []string{strconv.Itoa(c.ContentID), c.Title, c.Description, c.Category}
	}
	return s.writeAll(path, []string{"Content ID", "Title", "Description", "Category"}, rows)
}

// ExportUsers writes user profiles to CSV. Preferences are comma-joined.
func (s *Store) ExportUsers(users []domain.UserProfile, path string) error {
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{
			strconv.Itoa(u.UserID),
			u.BriefExplanation,
			u.Profession,
			strings.Join(u.Preferences, ","),
		}
	}
	return s.writeAll(path, []string{"User ID", "Brief Explanation", "Profession", "Preferences"}, rows)
}

// ExportQueries writes search queries to CSV.
func (s *Store) ExportQueries(queries []domain.SearchQuery, path string) error {
	rows := make([][]string, len(queries))
	for i, q := range queries {
		rows[i] = []string{strconv.Itoa(q.QueryID), q.QueryContent, q.Category}
	}
	return s.writeAll(path, []string{"Query ID", "Query Content", "Category"}, rows)
}

// ExportLogs writes search logs to CSV. Result lists are embedded as JSON;
// Clicks and CTR cells stay empty for logs without simulated engagement.
func (s *Store) ExportLogs(logs []domain.SearchLog, path string) error {
	rows := make([][]string, len(logs))
	for i, l := range logs {
		results := l.SearchResults
		if results == nil {
			results = []domain.SearchResult{}
		}
		encoded, err := json.Marshal(results)
		if err != nil {
			return fmt.Errorf("encode results for query %d: %w", l.QueryID, err)
		}

		var clicks, ctr string
		if l.Clicks != nil {
			clicks = strconv.Itoa(*l.Clicks)
		}
		if l.CTR != nil {
			ctr = strconv.FormatFloat(*l.CTR, 'f', -1, 64)
		}

		rows[i] = []string{
			strconv.Itoa(l.QueryID),
			strconv.Itoa(l.UserID),
			l.SearchQuery,
			string(encoded),
			clicks,
			ctr,
		}
	}
	return s.writeAll(path, []string{
		"Query ID", "User ID", "Search Query", "Search Results (JSON)", "Clicks", "CTR",
	}, rows)
}

// --- Import ---

// table is a parsed CSV file with column lookup by header name.
type table struct {
	cols map[string]int
	rows [][]string
}

func (t *table) get(row []string, col string) (string, bool) {
	idx, ok := t.cols[col]
	if !ok || idx >= len(row) {
		return "", false
	}
	return row[idx], true
}

// readAll loads a CSV file. Returns nil when the file does not exist.
func (s *Store) readAll(path string) (*table, error) {
	f, err := os.Open(s.Resolve(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[name] = i
	}
	return &table{cols: cols, rows: records[1:]}, nil
}

// ImportCategories loads categories. Missing file or columns yields (nil, nil).
func (s *Store) ImportCategories(path string) ([]domain.Category, error) {
	t, err := s.readAll(path)
	if t == nil || err != nil {
		return nil, err
	}

	categories := make([]domain.Category, 0, len(t.rows))
	for _, row := range t.rows {
		idStr, ok1 := t.get(row, "Category ID")
		name, ok2 := t.get(row, "Name")
		desc, ok3 := t.get(row, "Description")
		if !ok1 || !ok2 || !ok3 {
			return nil, nil
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			// Ids are re-assigned by load order when absent or corrupt.
			id = len(categories) + 1
		}
		categories = append(categories, domain.Category{ID: id, Name: name, Description: desc})
	}
	return categories, nil
}

// ImportContents loads content entries. Missing file or columns yields (nil, nil).
func (s *Store) ImportContents(path string) ([]domain.Content, error) {
	t, err := s.readAll(path)
	if t == nil || err != nil {
		return nil, err
	}

	contents := make([]domain.Content, 0, len(t.rows))
	for _, row := range t.rows {
		idStr, ok1 := t.get(row, "Content ID")
		title, ok2 := t.get(row, "Title")
		desc, ok3 := t.get(row, "Description")
		category, ok4 := t.get(row, "Category")
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, nil
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("%s: bad content id %q: %w", path, idStr, domain.ErrValidation)
		}
		contents = append(contents, domain.Content{
			ContentID: id, Title: title, Description: desc, Category: category,
		})
	}
	return contents, nil
}

// ImportUsers loads user profiles. When categories are provided, preferences
// are re-validated against them with the standard fallback policy. Missing
// file or columns yields (nil, nil).
func (s *Store) ImportUsers(path string, categories []domain.Category) ([]domain.UserProfile, error) {
	t, err := s.readAll(path)
	if t == nil || err != nil {
		return nil, err
	}

	var names []string
	if len(categories) > 0 {
		names = domain.CategoryNames(categories)
	}

	users := make([]domain.UserProfile, 0, len(t.rows))
	for _, row := range t.rows {
		idStr, ok1 := t.get(row, "User ID")
		brief, ok2 := t.get(row, "Brief Explanation")
		profession, ok3 := t.get(row, "Profession")
		prefsStr, ok4 := t.get(row, "Preferences")
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, nil
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("%s: bad user id %q: %w", path, idStr, domain.ErrValidation)
		}

		prefs := splitPreferences(prefsStr)
		if names != nil {
			prefs = domain.ValidatePreferences(prefs, names)
		}

		users = append(users, domain.UserProfile{
			UserID:           id,
			BriefExplanation: brief,
			Profession:       profession,
			Preferences:      prefs,
		})
	}
	return users, nil
}

// ImportQueries loads search queries. Missing file or columns yields (nil, nil).
// The exported format carries no user id or timestamp, so those fields stay zero.
func (s *Store) ImportQueries(path string) ([]domain.SearchQuery, error) {
	t, err := s.readAll(path)
	if t == nil || err != nil {
		return nil, err
	}

	queries := make([]domain.SearchQuery, 0, len(t.rows))
	for _, row := range t.rows {
		idStr, ok1 := t.get(row, "Query ID")
		content, ok2 := t.get(row, "Query Content")
		category, ok3 := t.get(row, "Category")
		if !ok1 || !ok2 || !ok3 {
			return nil, nil
		}
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, fmt.Errorf("%s: bad query id %q: %w", path, idStr, domain.ErrValidation)
		}
		queries = append(queries, domain.SearchQuery{
			QueryID: id, QueryContent: content, Category: category,
		})
	}
	return queries, nil
}

// ImportLogs loads search logs. Missing file or columns yields (nil, nil).
func (s *Store) ImportLogs(path string) ([]domain.SearchLog, error) {
	t, err := s.readAll(path)
	if t == nil || err != nil {
		return nil, err
	}

	logs := make([]domain.SearchLog, 0, len(t.rows))
	for _, row := range t.rows {
		queryIDStr, ok1 := t.get(row, "Query ID")
		userIDStr, ok2 := t.get(row, "User ID")
		query, ok3 := t.get(row, "Search Query")
		resultsStr, ok4 := t.get(row, "Search Results (JSON)")
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, nil
		}

		queryID, err := strconv.Atoi(queryIDStr)
		if err != nil {
			return nil, fmt.Errorf("%s: bad query id %q: %w", path, queryIDStr, domain.ErrValidation)
		}
		userID, err := strconv.Atoi(userIDStr)
		if err != nil {
			return nil, fmt.Errorf("%s: bad user id %q: %w", path, userIDStr, domain.ErrValidation)
		}

		var results []domain.SearchResult
		if err := json.Unmarshal([]byte(resultsStr), &results); err != nil {
			return nil, fmt.Errorf("%s: bad results for query %d: %w", path, queryID, domain.ErrValidation)
		}
		if results == nil {
			results = []domain.SearchResult{}
		}

		log := domain.SearchLog{
			QueryID:       queryID,
			UserID:        userID,
			SearchQuery:   query,
			SearchResults: results,
		}

		if cell, ok := t.get(row, "Clicks"); ok && cell != "" {
			clicks, err := strconv.Atoi(cell)
			if err != nil {
				return nil, fmt.Errorf("%s: bad clicks %q: %w", path, cell, domain.ErrValidation)
			}
			log.Clicks = &clicks
		}
		if cell, ok := t.get(row, "CTR"); ok && cell != "" {
			ctr, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: bad ctr %q: %w", path, cell, domain.ErrValidation)
			}
			log.CTR = &ctr
		}

		logs = append(logs, log)
	}
	return logs, nil
}

func splitPreferences(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
