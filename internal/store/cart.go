package store

import (
	"sync"

	"github.com/kgrae/bookdesk/internal/bookapi"
)

// CartLine pairs a book with the chosen quantity. The book copy is the one
// displayed when the line was added; authoritative pricing stays with the
// server at checkout.
type CartLine struct {
	Book     bookapi.Book
	Quantity int
}

// Subtotal is the display price for the line.
func (l CartLine) Subtotal() float64 {
	return l.Book.EffectivePrice() * float64(l.Quantity)
}

// Cart is the client-side shopping cart. Like the collection caches it is
// per-session, in-memory, and mutated only through its own methods.
type Cart struct {
	mu    sync.RWMutex
	lines []CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add inserts a line or bumps the quantity of an existing one.
func (c *Cart) Add(book bookapi.Book, qty int) {
	if qty <= 0 {
		qty = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.lines {
		if c.lines[i].Book.ID == book.ID {
			c.lines[i].Quantity += qty
			c.lines[i].Book = book
			return
		}
	}
	c.lines = append(c.lines, CartLine{Book: book, Quantity: qty})
}

// SetQuantity pins a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(id string, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if qty <= 0 {
		c.removeLocked(id)
		return
	}
	for i := range c.lines {
		if c.lines[i].Book.ID == id {
			c.lines[i].Quantity = qty
			return
		}
	}
}

// Remove drops the line for the given book id.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(id)
}

func (c *Cart) removeLocked(id string) {
	kept := c.lines[:0:0]
	for _, line := range c.lines {
		if line.Book.ID != id {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.lines) == 0 {
		return nil
	}
	dup := make([]CartLine, len(c.lines))
	copy(dup, c.lines)
	return dup
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal sums the display subtotals of all lines.
func (c *Cart) Subtotal() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	total := 0.0
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}
