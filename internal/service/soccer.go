package service

import (
	"fmt"

	"github.com/Harshitk-cp/behavenet/internal/ebn"
	"go.uber.org/zap"
)

// Beliefs of the soccer demo and their kickoff values.
const (
	BallVisible    = "ball_visible"
	NearBall       = "near_ball"
	AtGoalPosition = "at_goal_position"
	BallInGoal     = "ball_in_goal"
	Standing       = "standing"
)

var kickoff = map[string]float64{
	BallVisible:    0,
	NearBall:       0,
	AtGoalPosition: 0,
	BallInGoal:     0,
	Standing:       1,
}

type competenceDef struct {
	name      string
	pre       []ebn.Proposition
	effects   []ebn.Effect
	resources []ebn.ResourceProposition
}

// NewSoccerNetwork builds a small striker: find the ball, approach it,
// dribble towards the goal and shoot, getting up whenever it falls. The
// actions move the beliefs on board so the network can run unattended;
// scoring resets the board to kickoff.
func NewSoccerNetwork(name string, params ebn.Params, board *BeliefBoard, logger *zap.Logger) (*ebn.Network, map[string]*LoggingAction, error) {
	for belief, v := range kickoff {
		board.Declare(belief, v)
	}

	nudge := func(belief string, by float64) func() error {
		return func() error {
			s, err := board.Get(belief)
			if err != nil {
				return err
			}
			_, err = board.Set(belief, s.TruthValue+by)
			return err
		}
	}
	actions := map[string]*LoggingAction{
		"search_ball": NewLoggingAction("search_ball", logger, nudge(BallVisible, 1)),
		"go_to_ball":  NewLoggingAction("go_to_ball", logger, nudge(NearBall, 0.5)),
		"dribble":     NewLoggingAction("dribble", logger, nudge(AtGoalPosition, 0.5)),
		"kick": NewLoggingAction("kick", logger, func() error {
			for belief, v := range kickoff {
				if _, err := board.Set(belief, v); err != nil {
					return err
				}
			}
			return nil
		}),
		"get_up": NewLoggingAction("get_up", logger, nudge(Standing, 1)),
	}
	behaviors := make(map[string]ebn.Action, len(actions))
	for n, a := range actions {
		behaviors[n] = a
	}

	net, err := ebn.New(name, params, ebn.WithLogger(logger), ebn.WithBehaviors(behaviors))
	if err != nil {
		return nil, nil, err
	}

	p := make(map[string]*ebn.Perception, len(kickoff))
	for _, belief := range []string{BallVisible, NearBall, AtGoalPosition, BallInGoal, Standing} {
		b, err := board.Belief(belief)
		if err != nil {
			return nil, nil, err
		}
		p[belief] = ebn.NewPerception(b)
		if err := net.AddPerception(p[belief]); err != nil {
			return nil, nil, err
		}
	}
	is := func(belief string) ebn.Proposition { return ebn.NewProposition(p[belief], false) }
	not := func(belief string) ebn.Proposition { return ebn.NewProposition(p[belief], true) }

	score := ebn.NewGoal("score", is(BallInGoal))
	score.SetImportance(1.0)
	upright := ebn.NewGoal("stay_upright", is(Standing))
	upright.SetImportance(0.6)
	for _, g := range []*ebn.Goal{score, upright} {
		if err := net.AddGoal(g); err != nil {
			return nil, nil, err
		}
	}

	for _, r := range []*ebn.Resource{ebn.NewResource("legs", 1), ebn.NewResource("head", 1)} {
		if err := net.AddResource(r); err != nil {
			return nil, nil, err
		}
	}
	legs := ebn.ResourceProposition{Name: "legs", Amount: 1}
	head := ebn.ResourceProposition{Name: "head", Amount: 1}

	defs := []competenceDef{
		{
			name:      "search_ball",
			pre:       []ebn.Proposition{is(Standing)},
			effects:   []ebn.Effect{ebn.NewEffect(p[BallVisible], false, 0.9)},
			resources: []ebn.ResourceProposition{head},
		},
		{
			name:      "go_to_ball",
			pre:       []ebn.Proposition{is(BallVisible), is(Standing)},
			effects:   []ebn.Effect{ebn.NewEffect(p[NearBall], false, 0.8)},
			resources: []ebn.ResourceProposition{legs},
		},
		{
			name:      "dribble",
			pre:       []ebn.Proposition{is(NearBall), not(AtGoalPosition), is(Standing)},
			effects:   []ebn.Effect{ebn.NewEffect(p[AtGoalPosition], false, 0.7)},
			resources: []ebn.ResourceProposition{legs},
		},
		{
			name: "kick",
			pre:  []ebn.Proposition{is(NearBall), is(AtGoalPosition), is(Standing)},
			effects: []ebn.Effect{
				ebn.NewEffect(p[BallInGoal], false, 0.8),
				ebn.NewEffect(p[NearBall], true, 0.9),
			},
			resources: []ebn.ResourceProposition{legs},
		},
		{
			name:      "get_up",
			pre:       []ebn.Proposition{not(Standing)},
			effects:   []ebn.Effect{ebn.NewEffect(p[Standing], false, 1.0)},
			resources: []ebn.ResourceProposition{legs},
		},
	}
	for _, def := range defs {
		a, err := net.Behavior(def.name)
		if err != nil {
			return nil, nil, err
		}
		c := ebn.NewCompetence(def.name)
		for _, pre := range def.pre {
			c.AddPrecondition(pre)
		}
		for _, e := range def.effects {
			c.AddEffect(e)
		}
		for _, rp := range def.resources {
			c.AddResource(rp)
		}
		c.AddAction(a)
		if err := net.AddCompetence(c); err != nil {
			return nil, nil, fmt.Errorf("soccer network: %w", err)
		}
	}
	return net, actions, nil
}
