package engine

import "time"

// SubType is one entry in a realm's closed sub-type table. GrowthTime is how
// long a planted structure takes to become resolvable; BaseYield is the
// per-size-unit produce credited on resolve.
type SubType struct {
	GrowthTime time.Duration
	BaseYield  int64
}

// EconomyConfig is the full fee and policy schedule for one realm. Operations
// read every tunable from here; nothing numeric is hardcoded in the state
// machine itself.
type EconomyConfig struct {
	Realm string

	// Fees and prices. The first creature and first structure per owner are
	// free; every later one is gated on the matching fee.
	MintFee       int64
	StructureFee  int64
	BreedingFee   int64
	CatalystPrice int64 // buy price per catalyst unit
	EssencePrice  int64 // sell payout per essence unit

	// Conversion burns produce and credits produce/ratio + bonus catalyst.
	ConvertRatio int64
	ConvertBonus int64

	// Cooldown windows. An action is permitted once the elapsed time since
	// its last success reaches the window (boundary inclusive).
	TrainCooldown    time.Duration
	GroomCooldown    time.Duration
	HarvestCooldown  time.Duration
	MaintainCooldown time.Duration
	BreedingCooldown time.Duration

	// Stat progression per care action, capped at MaxStat.
	TrainSkillGain  int
	TrainMoraleGain int
	GroomEnergyGain int

	// Creature harvest yield: HarvestBase + skill/HarvestSkillDivisor.
	HarvestBase         int64
	HarvestSkillDivisor int64

	// Structure resolve yield: size*BaseYield + capacity*skill/YieldDivisor,
	// plus MaintenanceBonus when maintained within MaintenanceWindow.
	YieldDivisor      int64
	MaintenanceBonus  int64
	MaintenanceWindow time.Duration

	MinBreedLevel int

	// Baseline stats for minted and bred creatures.
	BaselineMorale int
	BaselineEnergy int
	BaselineSkill  int

	MaxNameLength int

	SubTypes map[string]SubType
}

// MaxStat bounds level, rarity and all skill stats.
const MaxStat = 100

func defaults(realm string, subTypes map[string]SubType) *EconomyConfig {
	return &EconomyConfig{
		Realm:               realm,
		MintFee:             50_000,
		StructureFee:        50_000,
		BreedingFee:         20_000,
		CatalystPrice:       10_000,
		EssencePrice:        5_000,
		ConvertRatio:        2,
		ConvertBonus:        1,
		TrainCooldown:       4 * time.Hour,
		GroomCooldown:       12 * time.Hour,
		HarvestCooldown:     72 * time.Hour,
		MaintainCooldown:    4 * time.Hour,
		BreedingCooldown:    24 * time.Hour,
		TrainSkillGain:      2,
		TrainMoraleGain:     5,
		GroomEnergyGain:     5,
		HarvestBase:         5,
		HarvestSkillDivisor: 10,
		YieldDivisor:        200,
		MaintenanceBonus:    3,
		MaintenanceWindow:   24 * time.Hour,
		MinBreedLevel:       5,
		BaselineMorale:      50,
		BaselineEnergy:      50,
		BaselineSkill:       10,
		MaxNameLength:       32,
		SubTypes:            subTypes,
	}
}

// FarmEconomy is the alpaca/land/wool-seeds-crops realm preset.
func FarmEconomy() *EconomyConfig {
	return defaults("farm", map[string]SubType{
		"Wheat":  {GrowthTime: 24 * time.Hour, BaseYield: 10},
		"Corn":   {GrowthTime: 36 * time.Hour, BaseYield: 16},
		"Barley": {GrowthTime: 48 * time.Hour, BaseYield: 22},
		"Oats":   {GrowthTime: 18 * time.Hour, BaseYield: 7},
	})
}

// AcademyEconomy is the wizard/grimoire/mana-spells-scrolls realm preset.
func AcademyEconomy() *EconomyConfig {
	return defaults("academy", map[string]SubType{
		"Fireball":       {GrowthTime: 24 * time.Hour, BaseYield: 10},
		"Frostbolt":      {GrowthTime: 36 * time.Hour, BaseYield: 16},
		"Arcane Missile": {GrowthTime: 48 * time.Hour, BaseYield: 22},
		"Healing":        {GrowthTime: 18 * time.Hour, BaseYield: 7},
	})
}
