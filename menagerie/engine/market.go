package engine

// List creates a sell order for a creature. The seller must be the current
// owner and the token must not already carry an active listing. While listed,
// the creature is frozen: care, breeding and direct transfer are rejected
// until the listing is bought or cancelled.
func (e *Engine) List(seller string, tokenID, price int64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	owner, err := e.creatureReg.ownerOf(tokenID)
	if err != nil {
		return err
	}
	if owner != seller {
		return ErrNotOwner
	}
	if e.listedLocked(tokenID) {
		return ErrListed
	}

	e.listings[tokenID] = &Listing{
		TokenID: tokenID,
		Seller:  seller,
		Price:   price,
		Active:  true,
	}
	e.dirty.listing(tokenID)
	return nil
}

// Cancel deactivates a listing. Only the seller may cancel.
func (e *Engine) Cancel(caller string, tokenID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.listings[tokenID]
	if !ok || !l.Active {
		return ErrNotListed
	}
	if l.Seller != caller {
		return ErrNotSeller
	}

	l.Active = false
	e.dirty.listing(tokenID)
	return nil
}

// BuyListed settles a listing: in one step the listing is deactivated,
// ownership moves to the buyer and the price is credited to the seller's
// proceeds. Any overpayment is returned to the caller. Under concurrent
// attempts on the same listing only the first succeeds; the rest see
// ErrNotListed.
func (e *Engine) BuyListed(buyer string, tokenID, payment int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	l, ok := e.listings[tokenID]
	if !ok || !l.Active {
		return 0, ErrNotListed
	}
	if payment < l.Price {
		return 0, ErrInsufficientPayment
	}

	// The listing freeze guarantees the seller still owns the token, so the
	// transfer cannot fail after the checks above.
	if err := e.creatureReg.transfer(tokenID, l.Seller, buyer); err != nil {
		return 0, err
	}
	e.creatures[tokenID].Owner = buyer
	l.Active = false
	e.proceeds[l.Seller] += l.Price

	e.dirty.creature(tokenID)
	e.dirty.listing(tokenID)
	e.dirty.account(l.Seller)
	return payment - l.Price, nil
}

// ActiveListings returns the token ids with an active listing, ascending.
func (e *Engine) ActiveListings() []int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	active := make(map[int64]struct{})
	for id, l := range e.listings {
		if l.Active {
			active[id] = struct{}{}
		}
	}
	return sortedIDs(active)
}

func (e *Engine) GetListing(tokenID int64) (Listing, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	l, ok := e.listings[tokenID]
	if !ok {
		return Listing{}, ErrNotListed
	}
	return *l, nil
}
