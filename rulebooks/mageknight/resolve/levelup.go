package resolve

import (
	"github.com/mage-knight-digital/MageKnight-sub011/core"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/event"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

// FameThresholds[i] is the fame needed to reach level i+2; level 1 is
// the start. The track matches the published fame board.
var FameThresholds = []int{3, 8, 14, 21, 29, 38, 47, 57, 68, 80}

// LevelForFame returns the level the fame total corresponds to.
func LevelForFame(fame int) int {
	level := 1
	for _, t := range FameThresholds {
		if fame >= t {
			level++
		}
	}
	return level
}

// processLevelUps compares fame against the track and applies any
// levels gained since the last check. Odd levels grant immediate stat
// gains; even levels draw two skills from the hero pool and queue a
// pendingLevelUpRewards entry, decided at end of turn.
func (r *run) processLevelUps(p *state.Player) {
	target := LevelForFame(p.Fame)
	for p.Level < target {
		p.Level++
		r.rec.Emit(event.New(event.LevelUp, p.ID).With("level", p.Level))
		if p.Level%2 == 1 {
			r.applyOddLevelGains(p)
			continue
		}
		skills := r.drawSkillOptions(p, 2)
		p.Pending.LevelUpRewards = append(p.Pending.LevelUpRewards, state.PendingLevelUp{
			Level:        p.Level,
			SkillOptions: skills,
		})
		r.rec.Emit(event.New(event.LevelUpRewardsPending, p.ID).With("level", p.Level))
	}
}

// applyOddLevelGains applies the fame board's odd-level stat row:
// armor at levels 3 and 7, hand limit at 5 and 9, and a command token
// at every odd level past 1.
func (r *run) applyOddLevelGains(p *state.Player) {
	switch p.Level {
	case 3, 7:
		p.Armor++
	case 5, 9:
		p.HandLimit++
	}
	p.CommandTokens++
	r.rec.Emit(event.New(event.CommandSlotGained, p.ID).With("level", p.Level))
}

// drawSkillOptions deterministically draws up to n skills from the
// hero's remaining pool using the state RNG, removing them from the
// pool.
func (r *run) drawSkillOptions(p *state.Player, n int) []*core.Ref {
	var drawn []*core.Ref
	for i := 0; i < n && len(p.RemainingHeroSkills) > 0; i++ {
		roll, err := r.dice().Roll(len(p.RemainingHeroSkills))
		if err != nil {
			break
		}
		idx := roll - 1
		drawn = append(drawn, p.RemainingHeroSkills[idx])
		p.RemainingHeroSkills = append(p.RemainingHeroSkills[:idx], p.RemainingHeroSkills[idx+1:]...)
	}
	return drawn
}
