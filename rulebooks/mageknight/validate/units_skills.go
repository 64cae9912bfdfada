package validate

import (
	"github.com/mage-knight-digital/MageKnight-sub011/rpgerr"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/action"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/catalog"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/modifier"
	"github.com/mage-knight-digital/MageKnight-sub011/rulebooks/mageknight/state"
)

func unitRecruitValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.RecruitUnit)
	p := c.Player()

	inOffer := false
	for _, u := range c.State.Offers.Units {
		if u.String() == a.UnitRef.String() {
			inOffer = true
			break
		}
	}
	if !inOffer {
		return rpgerr.New(CodeUnitNotRecruitable, "unit is not in the offer")
	}
	def, ok := c.Tables.Unit(a.UnitRef)
	if !ok {
		return rpgerr.Newf(rpgerr.CodeInternal, "unknown unit %s", a.UnitRef)
	}
	if len(p.Units) >= p.CommandTokens {
		return rpgerr.New(CodeUnitLimitReached, "no free command token")
	}
	cost := def.Cost
	for _, m := range modifier.OfKind(c.State.ActiveModifiers.ForPlayer(p.ID), modifier.KindDiscountedPurchase) {
		cost -= m.Amount
	}
	if cost < 0 {
		cost = 0
	}
	if p.InfluencePoints < cost {
		return rpgerr.Newf(CodeInsufficientInfluence, "recruiting costs %d influence", cost)
	}
	// Recruiting happens at interactive sites matching the unit's color
	// band; the village/keep/city check collapses to "a conquered or
	// friendly site on this hex".
	hex, hexOK := c.State.Map.HexAt(p.Position)
	if !hexOK || hex.Site == nil {
		return rpgerr.New(CodeUnitNotRecruitable, "no recruiting site here")
	}
	switch hex.Site.Kind {
	case catalog.SiteVillage, catalog.SiteMonastery, catalog.SiteKeep, catalog.SiteCity:
		if (hex.Site.Kind == catalog.SiteKeep || hex.Site.Kind == catalog.SiteCity) && !hex.Site.Conquered {
			return rpgerr.New(CodeUnitNotRecruitable, "site must be conquered first")
		}
	default:
		return rpgerr.New(CodeUnitNotRecruitable, "this site does not recruit units")
	}
	return nil
}

func unitActivationValid(c *Context) *rpgerr.Error {
	a := c.Action.(action.ActivateUnit)
	p := c.Player()
	unit, ok := p.UnitByInstanceID(a.InstanceID)
	if !ok {
		return rpgerr.Newf(CodeUnitNotFound, "unit %s is not under your command", a.InstanceID)
	}
	if unit.State != state.UnitReady {
		return rpgerr.New(CodeUnitNotReady, "unit is spent or wounded")
	}
	if a.AbilityIndex < 0 {
		return rpgerr.New(rpgerr.CodeInvalidTarget, "bad ability index")
	}
	return nil
}

func skillUsable(c *Context) *rpgerr.Error {
	a := c.Action.(action.UseSkill)
	p := c.Player()
	owned := false
	for _, s := range p.Skills {
		if s.String() == a.SkillRef.String() {
			owned = true
			break
		}
	}
	if !owned {
		return rpgerr.Newf(CodeSkillNotOwned, "skill %s not learned", a.SkillRef)
	}
	def, ok := c.Tables.Skill(a.SkillRef)
	if !ok {
		return rpgerr.Newf(rpgerr.CodeInternal, "unknown skill %s", a.SkillRef)
	}
	if def.OnActivate == nil {
		return rpgerr.New(rpgerr.CodeNotAllowed, "skill is passive")
	}
	if def.OncePerTurn {
		for _, used := range p.SkillCooldowns.UsedThisTurn {
			if used.String() == a.SkillRef.String() {
				return rpgerr.New(CodeSkillOnCooldown, "skill already used this turn")
			}
		}
	}
	for _, flipped := range p.SkillFlipState.FlippedSkills {
		if flipped.String() == a.SkillRef.String() {
			return rpgerr.New(CodeSkillOnCooldown, "skill is flipped until next round")
		}
	}
	return nil
}

// skillInCenter: returning an interactive skill requires it to actually
// be the one sitting in the center.
func skillInCenter(c *Context) *rpgerr.Error {
	a := c.Action.(action.ReturnInteractiveSkill)
	so := c.State.SourceOpeningCenter
	if so == nil || so.SkillRef.String() != a.SkillRef.String() {
		return rpgerr.New(CodeSkillNotInCenter, "that skill is not in the center")
	}
	if so.OwnerID != c.PlayerID {
		return rpgerr.New(rpgerr.CodeNotAllowed, "only the owner may reclaim the skill")
	}
	return nil
}
