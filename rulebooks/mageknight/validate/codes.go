// Package validate implements the per-action validator chains. Each
// incoming action runs an ordered list of pure predicates; the first
// failure wins and is returned as a *rpgerr.Error carrying one of the
// closed codes below. The engine turns that error into an
// INVALID_ACTION event and leaves state untouched.
package validate

import "github.com/mage-knight-digital/MageKnight-sub011/rpgerr"

// The closed validator code set. Codes are wire-stable: clients key
// i18n messages off them.
const (
	CodePlayerNotFound        rpgerr.Code = "PLAYER_NOT_FOUND"
	CodeNotYourTurn           rpgerr.Code = "NOT_YOUR_TURN"
	CodeWrongPhase            rpgerr.Code = "WRONG_PHASE"
	CodePendingResolution     rpgerr.Code = "PENDING_RESOLUTION_REQUIRED"
	CodeNoPendingResolution   rpgerr.Code = "NO_PENDING_RESOLUTION"
	CodeInsufficientMana      rpgerr.Code = "INSUFFICIENT_MANA"
	CodeSourceAlreadyUsed     rpgerr.Code = "SOURCE_ALREADY_USED"
	CodeDieNotUsable          rpgerr.Code = "DIE_NOT_USABLE"
	CodeCardNotInHand         rpgerr.Code = "CARD_NOT_IN_HAND"
	CodeCardNotPlayable       rpgerr.Code = "CARD_NOT_PLAYABLE"
	CodeWoundNotPlayable      rpgerr.Code = "WOUND_NOT_PLAYABLE"
	CodeTargetNotAdjacent     rpgerr.Code = "TARGET_NOT_ADJACENT"
	CodeInsufficientMovePoints rpgerr.Code = "INSUFFICIENT_MOVE_POINTS"
	CodeTerrainImpassable     rpgerr.Code = "TERRAIN_IMPASSABLE"
	CodeNotInCombat           rpgerr.Code = "NOT_IN_COMBAT"
	CodeWrongCombatPhase      rpgerr.Code = "WRONG_COMBAT_PHASE"
	CodeEnemyAlreadyDefeated  rpgerr.Code = "ENEMY_ALREADY_DEFEATED"
	CodeEnemyAlreadyBlocked   rpgerr.Code = "ENEMY_ALREADY_BLOCKED"
	CodeBlockInsufficient     rpgerr.Code = "BLOCK_INSUFFICIENT"
	CodeAttackInsufficient    rpgerr.Code = "ATTACK_INSUFFICIENT"
	CodeUnassignedDamage      rpgerr.Code = "UNASSIGNED_DAMAGE"
	CodeCombatEnemiesRemain   rpgerr.Code = "COMBAT_ENEMIES_REMAIN"
	CodeInvalidDamageTarget   rpgerr.Code = "INVALID_DAMAGE_TARGET"
	CodeCannotRestAfterMoving rpgerr.Code = "CANNOT_REST_AFTER_MOVING"
	CodeCannotRestAfterAction rpgerr.Code = "CANNOT_REST_AFTER_ACTION"
	CodeNotResting            rpgerr.Code = "NOT_RESTING"
	CodeInsufficientInfluence rpgerr.Code = "INSUFFICIENT_INFLUENCE"
	CodeUnitLimitReached      rpgerr.Code = "UNIT_LIMIT_REACHED"
	CodeUnitNotRecruitable    rpgerr.Code = "UNIT_NOT_RECRUITABLE"
	CodeUnitNotReady          rpgerr.Code = "UNIT_NOT_READY"
	CodeUnitNotFound          rpgerr.Code = "UNIT_NOT_FOUND"
	CodeSkillNotOwned         rpgerr.Code = "SKILL_NOT_OWNED"
	CodeSkillOnCooldown       rpgerr.Code = "SKILL_ON_COOLDOWN"
	CodeSkillNotInCenter      rpgerr.Code = "SKILL_NOT_IN_CENTER"
	CodeTacticNotAvailable    rpgerr.Code = "TACTIC_NOT_AVAILABLE"
	CodeNotYourTacticPick     rpgerr.Code = "NOT_YOUR_TACTIC_PICK"
	CodeInvalidChoiceIndex    rpgerr.Code = "INVALID_CHOICE_INDEX"
	CodeInvalidDiscard        rpgerr.Code = "INVALID_DISCARD"
	CodeNothingToUndo         rpgerr.Code = "NOTHING_TO_UNDO"
	CodeCheckpointReached     rpgerr.Code = "CHECKPOINT_REACHED"
	CodeNoExplorableTile      rpgerr.Code = "NO_EXPLORABLE_TILE"
	CodeNoCooperativeProposal rpgerr.Code = "NO_COOPERATIVE_PROPOSAL"
	CodeProposalAlreadyOpen   rpgerr.Code = "PROPOSAL_ALREADY_OPEN"
	CodeNotProposalInvitee    rpgerr.Code = "NOT_PROPOSAL_INVITEE"
	CodeEndOfRoundAnnounced   rpgerr.Code = "END_OF_ROUND_ALREADY_ANNOUNCED"
	CodeKnockedOut            rpgerr.Code = "PLAYER_KNOCKED_OUT"
	CodeNoCombatHere          rpgerr.Code = "NO_COMBAT_AT_LOCATION"
)
