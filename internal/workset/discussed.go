package workset

import (
	"go-sales-crm/internal/model"

	"github.com/google/uuid"
)

// DiscussedProducts is the set of products considered during an interview.
// Its first element drives sale derivation and the interview's legacy product_id.
type DiscussedProducts struct {
	set *OrderedSet[uuid.UUID, model.Product]
}

func NewDiscussedProducts(products ...model.Product) *DiscussedProducts {
	d := &DiscussedProducts{
		set: NewOrderedSet(func(p model.Product) uuid.UUID { return p.ID }),
	}
	for _, p := range products {
		d.Add(p)
	}
	return d
}

func (d *DiscussedProducts) Add(p model.Product) bool        { return d.set.Add(p) }
func (d *DiscussedProducts) Remove(productID uuid.UUID) bool { return d.set.Remove(productID) }
func (d *DiscussedProducts) Has(productID uuid.UUID) bool    { return d.set.Has(productID) }
func (d *DiscussedProducts) Len() int                        { return d.set.Len() }
func (d *DiscussedProducts) IsEmpty() bool                   { return d.set.Len() == 0 }
func (d *DiscussedProducts) First() (model.Product, bool)    { return d.set.First() }
func (d *DiscussedProducts) Products() []model.Product       { return d.set.Items() }

// FirstID is the value stored in Interview.ProductID: nil when nothing was discussed.
func (d *DiscussedProducts) FirstID() *uuid.UUID {
	p, ok := d.set.First()
	if !ok {
		return nil
	}
	id := p.ID
	return &id
}
