package contacts

import (
	"context"

	"github.com/thehouseofcoaching/awl-scanner/internal/models"
)

// Repository stores the mail recipients for scanned attendance lists.
// Contacts have an independent lifecycle from scan batches: they survive
// across sessions and are only changed through this interface.
type Repository interface {
	All(ctx context.Context) ([]models.Contact, error)
	Add(ctx context.Context, name, email string) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
}
