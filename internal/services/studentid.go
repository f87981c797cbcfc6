package services

import (
	"context"
	"fmt"

	"github.com/lojf/regform/internal/models"
)

// Counter counts stored records by id prefix.
type Counter interface {
	CountWithPrefix(ctx context.Context, prefix string) (int64, error)
}

// Store is the record store the registration flow writes to.
type Store interface {
	Counter
	Insert(ctx context.Context, rec models.StudentRecord) error
}

// GenerateID returns the next id for year, "<year>-<count+1>" with the
// sequence zero-padded to five digits. When the count query fails the
// sequence starts over at 1 and the error goes to onErr; the caller is
// never failed. Two submissions racing in the same year can get the same
// id; the store's primary key rejects the second insert.
func GenerateID(ctx context.Context, c Counter, year int, onErr func(error)) string {
	n, err := c.CountWithPrefix(ctx, fmt.Sprintf("%d-", year))
	if err != nil {
		if onErr != nil {
			onErr(err)
		}
		n = 0
	}
	return fmt.Sprintf("%d-%05d", year, n+1)
}
