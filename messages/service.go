package messages

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/memberchat/apperror"
)

// Page is one page of the feed together with the total message count.
type Page struct {
	Count   int64
	Results []MessageResponse
}

// Service is the feed contract consumed by the handlers.
type Service interface {
	// ListAll returns the entire feed in ascending (created_at, id) order.
	ListAll(ctx context.Context) ([]MessageResponse, error)
	// ListPage returns one page of the feed; page is 1-based.
	ListPage(ctx context.Context, page, pageSize int) (*Page, error)
	// Create appends a message for the given author.
	Create(ctx context.Context, authorID int64, authorName, text string) (*MessageResponse, error)
}

// MessageService implements Service against a pgx pool.
type MessageService struct {
	db *pgxpool.Pool
}

// NewMessageService creates a MessageService.
func NewMessageService(db *pgxpool.Pool) *MessageService {
	return &MessageService{db: db}
}

var _ Service = (*MessageService)(nil)

// listQuery orders by (created_at, id): ascending timestamps with the
// insertion id as a tie-break, so pages never reorder when timestamps
// collide at storage resolution.
const listQuery = `
	SELECT m.id, m.text, u.username, m.created_at
	FROM messages m
	JOIN users u ON u.id = m.user_id
	ORDER BY m.created_at ASC, m.id ASC`

func (s *MessageService) ListAll(ctx context.Context) ([]MessageResponse, error) {
	rows, err := s.db.Query(ctx, listQuery)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list messages", err)
	}
	return scanMessages(rows)
}

func (s *MessageService) ListPage(ctx context.Context, page, pageSize int) (*Page, error) {
	var count int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM messages`).Scan(&count); err != nil {
		return nil, apperror.NewDatabaseError("failed to count messages", err)
	}

	offset := (page - 1) * pageSize
	rows, err := s.db.Query(ctx, listQuery+` LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list messages", err)
	}
	results, err := scanMessages(rows)
	if err != nil {
		return nil, err
	}
	return &Page{Count: count, Results: results}, nil
}

func (s *MessageService) Create(ctx context.Context, authorID int64, authorName, text string) (*MessageResponse, error) {
	if err := ValidateText(text); err != nil {
		return nil, err
	}

	msg := MessageResponse{Text: text, Author: authorName}
	query := `INSERT INTO messages (user_id, text)
	          VALUES ($1, $2)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, authorID, text).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create message", err)
	}
	return &msg, nil
}

func scanMessages(rows pgx.Rows) ([]MessageResponse, error) {
	defer rows.Close()

	results := make([]MessageResponse, 0)
	for rows.Next() {
		var msg MessageResponse
		if err := rows.Scan(&msg.ID, &msg.Text, &msg.Author, &msg.CreatedAt); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan message", err)
		}
		results = append(results, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to read messages", err)
	}
	return results, nil
}
