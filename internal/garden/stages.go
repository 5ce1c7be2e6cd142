package garden

// Stage is a discrete life-cycle label, always derived from continuous
// growth progress and never stored independently of it.
type Stage string

// Plant stages.
const (
	StageSeed        Stage = "seed"
	StageSprout      Stage = "sprout"
	StageGrowing     Stage = "growing"
	StageFlowering   Stage = "flowering"
	StageHarvestable Stage = "harvestable"
)

// Mushroom stages.
const (
	StageInoculated Stage = "inoculated"
	StageColonizing Stage = "colonizing"
	StagePinning    Stage = "pinning"
	StageFruiting   Stage = "fruiting"
)

// StagePolicy maps continuous progress to a discrete stage via ascending
// thresholds. Each crop family carries its own table; adding a family means
// adding a table, not new plumbing.
type StagePolicy struct {
	Levels []StageLevel
}

// StageLevel is one threshold entry: the stage applies from MinProgress
// (inclusive) up to the next level's threshold.
type StageLevel struct {
	MinProgress float64
	Stage       Stage
}

// StageFor returns the stage for a progress value.
func (p StagePolicy) StageFor(progress float64) Stage {
	stage := p.Levels[0].Stage
	for _, lvl := range p.Levels {
		if progress >= lvl.MinProgress {
			stage = lvl.Stage
		}
	}
	return stage
}

// Terminal returns the final stage of the table.
func (p StagePolicy) Terminal() Stage {
	return p.Levels[len(p.Levels)-1].Stage
}

// PlantStages is the threshold table for the fast general-purpose plant
// family.
var PlantStages = StagePolicy{Levels: []StageLevel{
	{0.0, StageSeed},
	{0.1, StageSprout},
	{0.2, StageGrowing},
	{0.6, StageFlowering},
	{1.0, StageHarvestable},
}}

// MushroomStages is the threshold table for the slower multi-stage mushroom
// family. The thresholds deliberately differ from the plant table.
var MushroomStages = StagePolicy{Levels: []StageLevel{
	{0.0, StageInoculated},
	{0.15, StageColonizing},
	{0.5, StagePinning},
	{0.75, StageFruiting},
	{1.0, StageHarvestable},
}}

// PolicyFor returns the stage table for a family.
func PolicyFor(f Family) StagePolicy {
	if f == FamilyMushroom {
		return MushroomStages
	}
	return PlantStages
}
