package console

import (
	"context"
	"fmt"

	"github.com/rogerio-castellano/inventory-console/internal/backup"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
)

// BackupAction writes the whole product table to a CSV file.
type BackupAction struct {
	store repo.ProductRepository
	path  string
}

func NewBackupAction(store repo.ProductRepository, path string) *BackupAction {
	return &BackupAction{store: store, path: path}
}

func (a *BackupAction) Key() string         { return "b" }
func (a *BackupAction) Description() string { return "Backup the inventory" }

func (a *BackupAction) Run(ctx context.Context, p *Prompter) error {
	products, err := a.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	if err := backup.WriteFile(a.path, products); err != nil {
		return err
	}
	p.Printf("\nBackup successful!\n\n")
	return nil
}
