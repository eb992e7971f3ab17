package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pageblocks"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pageblocks.PageService = (*PageService)(nil)

// PageService implements pageblocks.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// hashBlocks computes the xxHash of the block texts in order.
func hashBlocks(blocks []pageblocks.ContentBlock) string {
	d := xxhash.New()
	for _, b := range blocks {
		_, _ = d.WriteString(string(b.ContentType))
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(b.Text)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(b.Image.Name)
		_, _ = d.WriteString("\n")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// joinLinks stores a link list in a single column. Links never contain
// newlines.
func joinLinks(links []string) string {
	return strings.Join(links, "\n")
}

func splitLinks(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// CreatePage stores a page with its blocks and headers in one transaction.
// An ID is generated if the page has none; ContentHash is always recomputed.
func (s *PageService) CreatePage(ctx context.Context, page *pageblocks.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	if page.ID == "" {
		page.ID = uuid.New().String()
	}
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now()
	}
	page.FetchedAt = page.FetchedAt.UTC().Truncate(time.Second)
	page.ContentHash = hashBlocks(page.Blocks)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO pages (id, source_url, path, title, content_hash, image_counter, internal_links, external_links, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, page.ID, page.SourceURL, page.Path, page.Title, page.ContentHash, page.ImageCounter,
		joinLinks(page.InternalLinks), joinLinks(page.ExternalLinks), page.FetchedAt.Format(time.RFC3339))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return pageblocks.Errorf(pageblocks.EINVALID, "page %q already exists", page.ID)
		}
		return err
	}

	for i, b := range page.Blocks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO blocks (page_id, position, seq, content_type, text, image_name, image_url, link_kind, link_target, root, fragment, last_header)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, page.ID, i, b.Position.Seq, string(b.ContentType), b.Text, b.Image.Name, b.Image.URL,
			string(b.Link.Kind), b.Link.Target, b.Position.Root, b.Position.Fragment, b.LastHeader)
		if err != nil {
			return fmt.Errorf("insert block %d: %w", i, err)
		}
	}

	for i, h := range page.Headers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO headers (page_id, position, seq, level, text)
			VALUES (?, ?, ?, ?, ?)
		`, page.ID, i, h.Seq, h.Rank, h.Text)
		if err != nil {
			return fmt.Errorf("insert header %d: %w", i, err)
		}
	}

	return tx.Commit()
}

const pageColumns = "id, source_url, path, title, content_hash, image_counter, internal_links, external_links, fetched_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPage(row rowScanner) (*pageblocks.Page, error) {
	var page pageblocks.Page
	var internal, external, fetchedAt string

	if err := row.Scan(&page.ID, &page.SourceURL, &page.Path, &page.Title, &page.ContentHash,
		&page.ImageCounter, &internal, &external, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}
	page.InternalLinks = splitLinks(internal)
	page.ExternalLinks = splitLinks(external)
	return &page, nil
}

// FindPageByID retrieves a page with its blocks and headers.
func (s *PageService) FindPageByID(ctx context.Context, id string) (*pageblocks.Page, error) {
	page, err := scanPage(s.db.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, pageblocks.Errorf(pageblocks.ENOTFOUND, "page not found")
	}
	if err != nil {
		return nil, err
	}

	if page.Blocks, err = s.findBlocks(ctx, id); err != nil {
		return nil, err
	}
	if page.Headers, err = s.findHeaders(ctx, id); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *PageService) findBlocks(ctx context.Context, pageID string) ([]pageblocks.ContentBlock, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, content_type, text, image_name, image_url, link_kind, link_target, root, fragment, last_header
		FROM blocks
		WHERE page_id = ?
		ORDER BY position ASC
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []pageblocks.ContentBlock
	for rows.Next() {
		var b pageblocks.ContentBlock
		var contentType, linkKind string
		if err := rows.Scan(&b.Position.Seq, &contentType, &b.Text, &b.Image.Name, &b.Image.URL,
			&linkKind, &b.Link.Target, &b.Position.Root, &b.Position.Fragment, &b.LastHeader); err != nil {
			return nil, err
		}
		b.ContentType = pageblocks.ContentType(contentType)
		b.Link.Kind = pageblocks.LinkKind(linkKind)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

func (s *PageService) findHeaders(ctx context.Context, pageID string) ([]pageblocks.HeaderEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, level, text
		FROM headers
		WHERE page_id = ?
		ORDER BY position ASC
	`, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headers []pageblocks.HeaderEntry
	for rows.Next() {
		var h pageblocks.HeaderEntry
		if err := rows.Scan(&h.Seq, &h.Rank, &h.Text); err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	return headers, rows.Err()
}

// FindPages retrieves pages matching the filter, newest first.
// Blocks and headers are not loaded.
func (s *PageService) FindPages(ctx context.Context, filter pageblocks.PageFilter) ([]*pageblocks.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + pageColumns + " FROM pages WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, source_url ASC, path ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*pageblocks.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// DeletePage permanently removes a page with its blocks and headers.
func (s *PageService) DeletePage(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pageblocks.Errorf(pageblocks.ENOTFOUND, "page not found")
	}

	return nil
}
