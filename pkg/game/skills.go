package game

import (
	"fmt"

	"github.com/jwebster45206/d20"
)

// Skill names a player skill.
type Skill string

const (
	SkillTranslation Skill = "translation"
	SkillCooking     Skill = "cooking"
	SkillNotary      Skill = "notary"
	SkillWriting     Skill = "writing"
)

// AllSkills lists skills in display order.
var AllSkills = []Skill{SkillTranslation, SkillCooking, SkillNotary, SkillWriting}

// SkillLevel is one row of the skills view.
type SkillLevel struct {
	Skill Skill
	Level int
}

// Skills is the player's skill sheet, held as attributes of a d20 actor.
type Skills struct {
	actor *d20.Actor
}

// NewSkills returns the starting sheet: writing 1, everything else 0.
func NewSkills() (*Skills, error) {
	levels := make(map[Skill]int, len(AllSkills))
	for _, sk := range AllSkills {
		levels[sk] = 0
	}
	levels[SkillWriting] = 1
	return buildSkills(levels)
}

func buildSkills(levels map[Skill]int) (*Skills, error) {
	attrs := make(map[string]int, len(levels))
	for sk, lv := range levels {
		attrs[string(sk)] = lv
	}
	actor, err := d20.NewActor("player").
		WithHP(1).
		WithAC(10).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build skill sheet: %w", err)
	}
	return &Skills{actor: actor}, nil
}

// Level returns the level of sk.
func (s *Skills) Level(sk Skill) int {
	lv, _ := s.actor.Attribute(string(sk))
	return lv
}

// Known returns the skills with a non-zero level, in display order.
func (s *Skills) Known() []SkillLevel {
	var out []SkillLevel
	for _, sk := range AllSkills {
		if lv := s.Level(sk); lv > 0 {
			out = append(out, SkillLevel{Skill: sk, Level: lv})
		}
	}
	return out
}
