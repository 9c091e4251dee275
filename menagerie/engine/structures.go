package engine

import "time"

// BuyStructure purchases a new land plot / grimoire. The first structure per
// owner is free; later ones require the configured structure fee. Capacity
// and size are fixed at purchase, derived from the same deterministic code
// generator the creatures use.
func (e *Engine) BuyStructure(owner, name string, payment int64) (int64, error) {
	if err := e.validName(name); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.structureReg.count(owner) > 0 && payment < e.cfg.StructureFee {
		return 0, ErrInsufficientPayment
	}

	id := e.structureReg.mint(owner)
	seed := NewDNA(e.cfg.Realm+"/structure", id, name, owner)

	e.structures[id] = &Structure{
		ID:       id,
		Owner:    owner,
		Name:     name,
		Capacity: int(seed[0]) % (MaxStat + 1),
		Size:     1 + int(seed[1])%10,
	}
	e.treasury += payment
	e.dirty.structure(id)
	return id, nil
}

// Plant activates a fallow structure with one of the realm's known sub-types
// (crop kind / spell kind), consuming one catalyst unit. Completion time is
// fixed by the sub-type table at planting and never moves afterwards.
func (e *Engine) Plant(caller string, structureID int64, subType string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.ownedStructureLocked(caller, structureID)
	if err != nil {
		return err
	}
	if s.Active {
		return ErrAlreadyActive
	}
	spec, ok := e.cfg.SubTypes[subType]
	if !ok {
		return ErrUnknownSubType
	}
	bal := e.balanceLocked(caller)
	if bal.Catalyst < 1 {
		return ErrInsufficientInput
	}

	now := e.clock.Now()
	bal.Catalyst--
	s.Active = true
	s.SubType = subType
	s.PlantedAt = now
	s.ReadyAt = now.Add(spec.GrowthTime)
	s.LastMaintained = now

	e.dirty.structure(structureID)
	e.dirty.account(caller)
	return nil
}

// Maintain (water/channel) is permitted only while active and once per
// maintenance window. It never shifts the completion time; freshness only
// feeds the quality bonus applied at resolve.
func (e *Engine) Maintain(caller string, structureID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.ownedStructureLocked(caller, structureID)
	if err != nil {
		return err
	}
	if !s.Active {
		return ErrNotActive
	}
	if !e.cooldownElapsed(s.LastMaintained, e.cfg.MaintainCooldown) {
		return ErrCooldownActive
	}

	s.LastMaintained = e.clock.Now()
	e.dirty.structure(structureID)
	return nil
}

// Resolve (harvest/cast) completes an active structure's cycle once the
// growth time has elapsed. The actor creature must belong to the same owner;
// its skill scales the yield. The structure returns to fallow with all cycle
// timestamps cleared.
func (e *Engine) Resolve(caller string, structureID, creatureID int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	s, err := e.ownedStructureLocked(caller, structureID)
	if err != nil {
		return 0, err
	}
	if !s.Active {
		return 0, ErrNotActive
	}
	now := e.clock.Now()
	if now.Before(s.ReadyAt) {
		return 0, ErrNotReady
	}
	c, err := e.ownedCreatureLocked(caller, creatureID)
	if err != nil {
		return 0, err
	}
	spec, ok := e.cfg.SubTypes[s.SubType]
	if !ok {
		return 0, ErrUnknownSubType
	}

	yield := int64(s.Size)*spec.BaseYield + int64(s.Capacity)*int64(c.Skill)/e.cfg.YieldDivisor
	if now.Sub(s.LastMaintained) <= e.cfg.MaintenanceWindow {
		yield += e.cfg.MaintenanceBonus
	}

	s.Active = false
	s.SubType = ""
	s.PlantedAt = time.Time{}
	s.ReadyAt = time.Time{}
	s.LastMaintained = time.Time{}
	e.balanceLocked(caller).Produce += yield

	e.dirty.structure(structureID)
	e.dirty.account(caller)
	return yield, nil
}

func (e *Engine) ownedStructureLocked(caller string, id int64) (*Structure, error) {
	s, ok := e.structures[id]
	if !ok {
		return nil, ErrUnknownID
	}
	if s.Owner != caller {
		return nil, ErrNotOwner
	}
	return s, nil
}
