package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rogerio-castellano/inventory-console/internal/clock"
	"github.com/rogerio-castellano/inventory-console/internal/inventory"
	"github.com/rogerio-castellano/inventory-console/internal/repo"
)

// entry is a validated product as typed at the console.
type entry struct {
	name     string
	price    int64
	quantity int
}

// AddAction creates a product or, when the name is taken, updates it.
type AddAction struct {
	store repo.ProductRepository
	clock clock.Clock
}

func NewAddAction(store repo.ProductRepository, clk clock.Clock) *AddAction {
	return &AddAction{store: store, clock: clk}
}

func (a *AddAction) Key() string         { return "a" }
func (a *AddAction) Description() string { return "Add a product to the inventory" }

// Run repeats the prompt sequence until an entry validates. A blank name
// returns to the menu.
func (a *AddAction) Run(ctx context.Context, p *Prompter) error {
	for {
		e, err := a.promptEntry(ctx, p)
		if errors.Is(err, errBackToMenu) {
			return nil
		}
		var verr *inventory.ValidationError
		if errors.As(err, &verr) {
			p.Printf("Please enter a valid entry\n\n")
			continue
		}
		if err != nil {
			return err
		}

		p.Printf("\nProduct name: %s\nProduct price: %s\nProduct quantity: %d\n\n",
			e.name, inventory.FormatCents(e.price), e.quantity)

		ok, err := p.Confirm(ctx, "Would you like to add this product to the inventory? [Yn] ")
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return a.save(ctx, p, e)
	}
}

func (a *AddAction) promptEntry(ctx context.Context, p *Prompter) (entry, error) {
	rawName, err := p.Ask(ctx, "Enter the name of the product you would like to add (press Enter to return to the menu): ")
	if err != nil {
		return entry{}, err
	}
	if strings.TrimSpace(rawName) == "" {
		return entry{}, errBackToMenu
	}
	name, err := inventory.NormalizeName(rawName)
	if err != nil {
		return entry{}, err
	}

	rawPrice, err := p.Ask(ctx, fmt.Sprintf("Enter the price for one %s, (format: 3.29): ", name))
	if err != nil {
		return entry{}, err
	}
	price, err := inventory.ParsePrice(rawPrice)
	if err != nil {
		return entry{}, err
	}

	rawQty, err := p.Ask(ctx, fmt.Sprintf("Enter the amount of %s you would like to add: ", name))
	if err != nil {
		return entry{}, err
	}
	qty, err := inventory.ParseQuantity(rawQty)
	if err != nil {
		return entry{}, err
	}

	return entry{name: name, price: price, quantity: qty}, nil
}

func (a *AddAction) save(ctx context.Context, p *Prompter, e entry) error {
	_, err := a.store.Insert(ctx, e.name, e.price, e.quantity)
	if err == nil {
		p.Println("\nProduct created successfully!")
		return nil
	}
	if !errors.Is(err, repo.ErrDuplicateName) {
		return fmt.Errorf("add product %q: %w", e.name, err)
	}

	existing, err := a.store.GetByName(ctx, e.name)
	if err != nil {
		return fmt.Errorf("load existing product %q: %w", e.name, err)
	}

	now := a.clock.Now()
	if existing.UpdatedAt.After(now) {
		p.Printf("%s already exists with a newer record; nothing was changed.\n", e.name)
		return nil
	}

	existing.Price = e.price
	existing.Quantity = e.quantity
	existing.UpdatedAt = now
	if _, err := a.store.Update(ctx, existing); err != nil {
		return fmt.Errorf("update product %q: %w", e.name, err)
	}
	p.Printf("%s already exists and has been updated.\n", e.name)
	return nil
}
