package console

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/inventory-console/internal/inventory"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
)

const displayDateLayout = "01/02/2006"

// errBackToMenu ends an action without an error message.
var errBackToMenu = errors.New("back to menu")

// ViewAction shows one product by ID.
type ViewAction struct {
	store repo.ProductRepository
}

func NewViewAction(store repo.ProductRepository) *ViewAction {
	return &ViewAction{store: store}
}

func (a *ViewAction) Key() string         { return "v" }
func (a *ViewAction) Description() string { return "View a product by ID" }

// Run keeps showing products until the user declines to view another one.
// A blank ID returns to the menu.
func (a *ViewAction) Run(ctx context.Context, p *Prompter) error {
	for {
		product, err := a.promptProduct(ctx, p)
		if errors.Is(err, errBackToMenu) {
			return nil
		}
		if err != nil {
			return err
		}

		p.Println(FormatProduct(product))

		another, err := p.Confirm(ctx, "\n\nWould you like to view another product? [Yn] ")
		if err != nil {
			return err
		}
		if !another {
			return nil
		}
		p.Println("")
	}
}

func (a *ViewAction) promptProduct(ctx context.Context, p *Prompter) (models.Product, error) {
	for {
		raw, err := p.Ask(ctx, "Enter the ID of the item you would like to view (press Enter to return to the menu): ")
		if err != nil {
			return models.Product{}, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return models.Product{}, errBackToMenu
		}

		if id, convErr := strconv.Atoi(raw); convErr == nil {
			product, err := a.store.GetByID(ctx, id)
			if err == nil {
				return product, nil
			}
			if !errors.Is(err, repo.ErrProductNotFound) {
				return models.Product{}, fmt.Errorf("view product %d: %w", id, err)
			}
		}
		p.Printf("No item with an ID of %s exists, please enter a valid ID\n", raw)
	}
}

// FormatProduct renders a product card: name, underline, price, quantity
// and last-updated date.
func FormatProduct(product models.Product) string {
	var b strings.Builder
	b.WriteString("\n" + product.Name + "\n")
	b.WriteString(strings.Repeat("=", len([]rune(product.Name))) + "\n")
	b.WriteString("Price: " + inventory.FormatCents(product.Price) + "\n")
	b.WriteString("Quantity: " + strconv.Itoa(product.Quantity) + "\n")
	b.WriteString("Last updated: " + product.UpdatedAt.Format(displayDateLayout))
	return b.String()
}
