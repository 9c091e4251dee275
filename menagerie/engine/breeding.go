package engine

// Breed combines two eligible parents into a new creature owned by the
// caller. The child's genetic code is the fixed byte-wise interleave of the
// parents' codes (see CombineDNA), so the same pair always produces the same
// child code and therefore the same traits. Both parents enter the breeding
// cooldown on success.
func (e *Engine) Breed(caller string, parent1, parent2, payment int64) (int64, error) {
	if parent1 == parent2 {
		return 0, ErrSameParent
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	p1, err := e.ownedCreatureLocked(caller, parent1)
	if err != nil {
		return 0, err
	}
	p2, err := e.ownedCreatureLocked(caller, parent2)
	if err != nil {
		return 0, err
	}
	if e.listedLocked(parent1) || e.listedLocked(parent2) {
		return 0, ErrListed
	}
	if p1.Level < e.cfg.MinBreedLevel || p2.Level < e.cfg.MinBreedLevel {
		return 0, ErrTooYoung
	}
	now := e.clock.Now()
	if now.Before(p1.BreedReadyAt) || now.Before(p2.BreedReadyAt) {
		return 0, ErrCooldownActive
	}
	if payment < e.cfg.BreedingFee {
		return 0, ErrInsufficientPayment
	}

	id := e.creatureReg.mint(caller)
	dna := CombineDNA(p1.DNA, p2.DNA)
	traits := DeriveTraits(dna)

	e.creatures[id] = &Creature{
		ID:     id,
		Owner:  caller,
		Name:   p1.Name + " Jr.",
		DNA:    dna,
		Level:  1,
		Rarity: traits.Rarity,
		Morale: e.cfg.BaselineMorale,
		Energy: e.cfg.BaselineEnergy,
		Skill:  e.cfg.BaselineSkill,
	}

	cooldownUntil := now.Add(e.cfg.BreedingCooldown)
	p1.BreedReadyAt = cooldownUntil
	p2.BreedReadyAt = cooldownUntil
	e.treasury += payment

	e.dirty.creature(id)
	e.dirty.creature(parent1)
	e.dirty.creature(parent2)
	return id, nil
}
