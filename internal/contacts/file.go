package contacts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/thehouseofcoaching/awl-scanner/internal/models"
)

// FileRepository keeps contacts in one JSON file, rewritten wholesale on
// every mutation. Request volume is low and single-writer in practice; the
// mutex covers concurrent handlers within this process.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

var defaultContacts = []models.Contact{
	{ID: 1, Name: "Syntra Bizz", Email: "admin@syntrabizz.be"},
	{ID: 2, Name: "Syntra West", Email: "admin@syntrawest.be"},
	{ID: 3, Name: "Cevora", Email: "admin@cevora.be"},
}

// NewFileRepository ensures the data directory and contacts file exist,
// seeding the file with the default recipients when absent.
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileRepository{path: filepath.Join(dataDir, "contacts.json")}
	if _, err := os.Stat(repo.path); os.IsNotExist(err) {
		if err := repo.write(defaultContacts); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

func (r *FileRepository) All(ctx context.Context) ([]models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.read()
}

func (r *FileRepository) Add(ctx context.Context, name, email string) (*models.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read()
	if err != nil {
		return nil, err
	}

	id := time.Now().UnixMilli()
	if n := len(list); n > 0 && id <= list[n-1].ID {
		id = list[n-1].ID + 1
	}

	contact := models.Contact{ID: id, Name: name, Email: email}
	list = append(list, contact)
	if err := r.write(list); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list, err := r.read()
	if err != nil {
		return err
	}

	kept := list[:0]
	for _, c := range list {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	return r.write(kept)
}

func (r *FileRepository) read() ([]models.Contact, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts file: %w", err)
	}
	var list []models.Contact
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse contacts file: %w", err)
	}
	return list, nil
}

func (r *FileRepository) write(list []models.Contact) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal contacts: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write contacts file: %w", err)
	}
	return nil
}
