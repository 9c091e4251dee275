package engine

// Convert burns amount produce and credits amount/ratio + bonus catalyst
// (crops to seeds / scrolls to spells). The mutation is all-or-nothing.
func (e *Engine) Convert(owner string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	bal := e.balanceLocked(owner)
	if bal.Produce < amount {
		return 0, ErrInsufficientBalance
	}

	out := amount/e.cfg.ConvertRatio + e.cfg.ConvertBonus
	bal.Produce -= amount
	bal.Catalyst += out
	e.dirty.account(owner)
	return out, nil
}

// BuyCatalyst purchases catalyst units (seeds/spells) at the configured unit
// price. Payment must match exactly.
func (e *Engine) BuyCatalyst(owner string, amount, payment int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if payment != amount*e.cfg.CatalystPrice {
		return ErrInsufficientPayment
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.balanceLocked(owner).Catalyst += amount
	e.treasury += payment
	e.dirty.account(owner)
	return nil
}

// SellEssence sells essence units (wool/mana) at the configured payout price,
// crediting the owner's proceeds. Returns the payout.
func (e *Engine) SellEssence(owner string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	bal := e.balanceLocked(owner)
	if bal.Essence < amount {
		return 0, ErrInsufficientBalance
	}

	payout := amount * e.cfg.EssencePrice
	bal.Essence -= amount
	e.proceeds[owner] += payout
	e.dirty.account(owner)
	return payout, nil
}
