package thumbnails

import (
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/thumbkeeper/internal/client/models"
)

// scanList reads rows of (id, user_id, image_url, topic, context, style,
// created_at, total).
func scanList(rows *sql.Rows) ([]models.ThumbnailRecord, int, error) {
	defer rows.Close()

	records := make([]models.ThumbnailRecord, 0)
	total := 0
	for rows.Next() {
		var (
			rec     models.ThumbnailRecord
			context sql.NullString
			style   string
		)
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ImageURL, &rec.Topic, &context, &style, &rec.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("failed to scan thumbnail row: %w", err)
		}
		if context.Valid {
			rec.Context = &context.String
		}
		rec.Style = models.Style(style)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate thumbnail rows: %w", err)
	}
	return records, total, nil
}

func nullContext(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
