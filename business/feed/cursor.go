package feed

import (
	"strings"
	"time"

	"localGuide/domain"

	"github.com/google/uuid"
	"github.com/pobyzaarif/goshortcute"
)

func EncodeCursor(c domain.PageCursor) string {
	return goshortcute.StringtoBase64Encode(c.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + c.ID)
}

func DecodeCursor(raw string) (domain.PageCursor, error) {
	decoded := string(goshortcute.StringtoBase64Decode(raw))

	parts := strings.SplitN(decoded, "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return domain.PageCursor{}, domain.ErrInvalidCursor
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return domain.PageCursor{}, domain.ErrInvalidCursor
	}

	id, err := uuid.Parse(parts[1])
	if err != nil {
		return domain.PageCursor{}, domain.ErrInvalidCursor
	}

	return domain.PageCursor{CreatedAt: createdAt, ID: id.String()}, nil
}
