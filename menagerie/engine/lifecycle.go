package engine

import "time"

// The three care actions are gated by independent timers. An action becomes
// permitted once the elapsed time since its last success reaches the window;
// calling early is rejected with ErrCooldownActive, never silently ignored.

func (e *Engine) cooldownElapsed(last time.Time, window time.Duration) bool {
	return e.clock.Now().Sub(last) >= window
}

// Train is the primary care action (feed/train). It raises skill and morale
// and advances the level by one, all capped.
func (e *Engine) Train(caller string, id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.ownedCreatureLocked(caller, id)
	if err != nil {
		return err
	}
	if e.listedLocked(id) {
		return ErrListed
	}
	if !e.cooldownElapsed(c.LastTrained, e.cfg.TrainCooldown) {
		return ErrCooldownActive
	}

	c.LastTrained = e.clock.Now()
	c.Skill = clampStat(c.Skill + e.cfg.TrainSkillGain)
	c.Morale = clampStat(c.Morale + e.cfg.TrainMoraleGain)
	c.Level = clampStat(c.Level + 1)
	e.dirty.creature(id)
	return nil
}

// Groom is the secondary care action (groom/meditate). It raises energy.
func (e *Engine) Groom(caller string, id int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.ownedCreatureLocked(caller, id)
	if err != nil {
		return err
	}
	if e.listedLocked(id) {
		return ErrListed
	}
	if !e.cooldownElapsed(c.LastGroomed, e.cfg.GroomCooldown) {
		return ErrCooldownActive
	}

	c.LastGroomed = e.clock.Now()
	c.Energy = clampStat(c.Energy + e.cfg.GroomEnergyGain)
	e.dirty.creature(id)
	return nil
}

// Harvest collects the creature's resource (shear wool / harvest mana),
// crediting the owner's essence balance. Returns the yielded amount.
func (e *Engine) Harvest(caller string, id int64) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.ownedCreatureLocked(caller, id)
	if err != nil {
		return 0, err
	}
	if e.listedLocked(id) {
		return 0, ErrListed
	}
	if !e.cooldownElapsed(c.LastHarvest, e.cfg.HarvestCooldown) {
		return 0, ErrCooldownActive
	}

	yield := e.cfg.HarvestBase + int64(c.Skill)/e.cfg.HarvestSkillDivisor
	c.LastHarvest = e.clock.Now()
	c.Produced += yield
	e.balanceLocked(caller).Essence += yield

	e.dirty.creature(id)
	e.dirty.account(caller)
	return yield, nil
}
