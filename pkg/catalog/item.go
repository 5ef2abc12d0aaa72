package catalog

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/grid"
)

// Item is an immutable catalog entry. It marshals to and from the [Record]
// shape.
type Item struct {
	Name      string
	ImageRef  string
	SizeCells grid.Cells
}

// Record returns the wire form of it.
func (it Item) Record() Record {
	return Record{Name: it.Name, Image: it.ImageRef, Size: []int{it.SizeCells.W, it.SizeCells.H}}
}

// MarshalJSON implements json.Marshaler.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(it.Record())
}

// UnmarshalJSON implements json.Unmarshaler and validates the record.
func (it *Item) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	v, err := r.Item()
	if err != nil {
		return err
	}
	*it = v
	return nil
}

// Label returns "name (WxH)".
func (it Item) Label() string {
	return fmt.Sprintf("%s (%s)", it.Name, it.SizeCells)
}

// Record is the on-the-wire shape of a catalog entry.
type Record struct {
	Name  string `json:"name" yaml:"name" toml:"name" bson:"name"`
	Image string `json:"image" yaml:"image" toml:"image" bson:"image"`
	Size  []int  `json:"size" yaml:"size" toml:"size" bson:"size"`
}

// Item validates r and converts it into an Item.
func (r Record) Item() (Item, error) {
	if err := errors.ValidateItemName(r.Name); err != nil {
		return Item{}, err
	}
	if len(r.Size) != 2 {
		return Item{}, errors.New(errors.ErrCodeInvalidCatalog, "item %q: size must have two entries, got %d", r.Name, len(r.Size))
	}
	if r.Size[0] <= 0 || r.Size[1] <= 0 {
		return Item{}, errors.New(errors.ErrCodeInvalidCatalog, "item %q: size must be positive, got %v", r.Name, r.Size)
	}
	return Item{
		Name:      strings.TrimSpace(r.Name),
		ImageRef:  r.Image,
		SizeCells: grid.Cells{W: r.Size[0], H: r.Size[1]},
	}, nil
}

// Catalog is an ordered, name-indexed set of items.
type Catalog struct {
	items  []Item
	byName map[string]int
}

// New builds a catalog. When several items share a name, the first wins.
func New(items []Item) *Catalog {
	c := &Catalog{byName: make(map[string]int, len(items))}
	for _, it := range items {
		if _, dup := c.byName[it.Name]; dup {
			continue
		}
		c.byName[it.Name] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// Empty returns a catalog with no items.
func Empty() *Catalog { return New(nil) }

// Items returns the items in source order.
func (c *Catalog) Items() []Item { return slices.Clone(c.items) }

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Lookup finds an item by name.
func (c *Catalog) Lookup(name string) (Item, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Get is like Lookup but returns an ITEM_NOT_FOUND error.
func (c *Catalog) Get(name string) (Item, error) {
	it, ok := c.Lookup(name)
	if !ok {
		return Item{}, errors.New(errors.ErrCodeItemNotFound, "no catalog item named %q", name)
	}
	return it, nil
}
