// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package soccer

import (
	"errors"
	"fmt"
	"github.com/SoftbearStudios/soccer/server/world"
	"gopkg.in/yaml.v3"
	"io"
	"os"
	"time"
)

// Slot is one position of a formation, in the coordinates of the team defending the
// left goal. The team defending the right goal mirrors it.
type Slot struct {
	Role      Role        `yaml:"role"`
	Defending world.Vec2f `yaml:"defending"`
	Attacking world.Vec2f `yaml:"attacking"`
}

// Params tunes a Match. Distances are in pitch units, speeds in units per second and
// powers are initial ball speeds.
type Params struct {
	PitchLeft   float32 `yaml:"pitch_left"`
	PitchTop    float32 `yaml:"pitch_top"`
	PitchWidth  float32 `yaml:"pitch_width"`
	PitchHeight float32 `yaml:"pitch_height"`
	GoalHeight  float32 `yaml:"goal_height"`
	GoalDepth   float32 `yaml:"goal_depth"`

	BallDrag      float32 `yaml:"ball_drag"`
	BallBounce    float32 `yaml:"ball_bounce"`
	BallRadius    float32 `yaml:"ball_radius"`
	BallStopSpeed float32 `yaml:"ball_stop_speed"`

	PlayerSpeed  float32 `yaml:"player_speed"`
	KeeperSpeed  float32 `yaml:"keeper_speed"`
	PlayerRadius float32 `yaml:"player_radius"`

	MaxShotPower     float32 `yaml:"max_shot_power"`
	MaxPassPower     float32 `yaml:"max_pass_power"`
	DribblePower     float32 `yaml:"dribble_power"`
	DribbleTurnPower float32 `yaml:"dribble_turn_power"`

	AtTargetRange        float32 `yaml:"at_target_range"`
	HomeRange            float32 `yaml:"home_range"`
	KickingRange         float32 `yaml:"kicking_range"`
	ReceivingRange       float32 `yaml:"receiving_range"`
	KeeperRange          float32 `yaml:"keeper_range"`
	KeeperInterceptRange float32 `yaml:"keeper_intercept_range"`
	TendingDistance      float32 `yaml:"tending_distance"`
	ComfortZone          float32 `yaml:"comfort_zone"`
	PassThreatRadius     float32 `yaml:"pass_threat_radius"`

	MinPassDistance       float32 `yaml:"min_pass_distance"`
	KeeperMinPassDistance float32 `yaml:"keeper_min_pass_distance"`

	SupportSpotRows    int           `yaml:"support_spot_rows"`
	SupportSpotColumns int           `yaml:"support_spot_columns"`
	SupportInterval    time.Duration `yaml:"support_interval"`
	OptimalDistance    float32       `yaml:"optimal_distance"`
	PassSafeStrength   float32       `yaml:"pass_safe_strength"`
	CanShootStrength   float32       `yaml:"can_shoot_strength"`
	DistanceStrength   float32       `yaml:"distance_strength"`

	ShotAttempts   int           `yaml:"shot_attempts"`
	PotShotChance  float32       `yaml:"pot_shot_chance"`
	ArriveChance   float32       `yaml:"arrive_chance"`
	KickCooldown   time.Duration `yaml:"kick_cooldown"`
	KeeperHoldTime time.Duration `yaml:"keeper_hold_time"`

	Formation []Slot `yaml:"formation"`
}

func DefaultParams() Params {
	return Params{
		PitchLeft:   80,
		PitchTop:    64,
		PitchWidth:  1120,
		PitchHeight: 576,
		GoalHeight:  128,
		GoalDepth:   40,

		BallDrag:      -100,
		BallBounce:    0.5,
		BallRadius:    8,
		BallStopSpeed: 1,

		PlayerSpeed:  100,
		KeeperSpeed:  90,
		PlayerRadius: 12,

		MaxShotPower:     560,
		MaxPassPower:     400,
		DribblePower:     120,
		DribbleTurnPower: 60,

		AtTargetRange:        10,
		HomeRange:            32,
		KickingRange:         20,
		ReceivingRange:       20,
		KeeperRange:          12,
		KeeperInterceptRange: 160,
		TendingDistance:      40,
		ComfortZone:          60,
		PassThreatRadius:     70,

		MinPassDistance:       120,
		KeeperMinPassDistance: 200,

		SupportSpotRows:    6,
		SupportSpotColumns: 13,
		SupportInterval:    time.Second,
		OptimalDistance:    200,
		PassSafeStrength:   2,
		CanShootStrength:   1,
		DistanceStrength:   2,

		ShotAttempts:   5,
		PotShotChance:  0.005,
		ArriveChance:   0.5,
		KickCooldown:   time.Second / 8,
		KeeperHoldTime: time.Second,

		Formation: []Slot{
			{Role: Goalkeeper, Defending: world.Vec2f{X: 104, Y: 352}, Attacking: world.Vec2f{X: 104, Y: 352}},
			{Role: Defender, Defending: world.Vec2f{X: 300, Y: 232}, Attacking: world.Vec2f{X: 520, Y: 232}},
			{Role: Defender, Defending: world.Vec2f{X: 300, Y: 472}, Attacking: world.Vec2f{X: 520, Y: 472}},
			{Role: Attacker, Defending: world.Vec2f{X: 560, Y: 272}, Attacking: world.Vec2f{X: 880, Y: 232}},
			{Role: Attacker, Defending: world.Vec2f{X: 560, Y: 432}, Attacking: world.Vec2f{X: 880, Y: 472}},
		},
	}
}

// LoadParams decodes YAML over DefaultParams, so omitted fields keep their default.
// An empty path returns the defaults.
func LoadParams(path string) (Params, error) {
	params := DefaultParams()
	if path == "" {
		return params, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return params, fmt.Errorf("opening params: %w", err)
	}
	defer file.Close()

	return DecodeParams(file)
}

func DecodeParams(r io.Reader) (Params, error) {
	params := DefaultParams()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&params); err != nil && !errors.Is(err, io.EOF) {
		return params, fmt.Errorf("decoding params: %w", err)
	}
	return params, params.Validate()
}

var (
	ErrNoKeeper     = errors.New("formation needs exactly one goalkeeper")
	ErrPositiveDrag = errors.New("ball drag must not be positive")
)

// Validate reports the first inconsistency that would make a Match misbehave.
func (params *Params) Validate() error {
	if params.PitchWidth <= 0 || params.PitchHeight <= 0 {
		return fmt.Errorf("invalid pitch size %fx%f", params.PitchWidth, params.PitchHeight)
	}
	if params.GoalHeight <= 2*params.BallRadius || params.GoalHeight >= params.PitchHeight {
		return fmt.Errorf("invalid goal height %f", params.GoalHeight)
	}
	if params.GoalDepth <= 2*params.BallRadius {
		return fmt.Errorf("goal depth %f does not fit the ball", params.GoalDepth)
	}
	if params.BallDrag > 0 {
		return ErrPositiveDrag
	}
	if params.BallBounce < 0 || params.BallBounce > 1 {
		return fmt.Errorf("ball bounce %f not in [0, 1]", params.BallBounce)
	}
	if params.PlayerSpeed <= 0 || params.KeeperSpeed <= 0 {
		return errors.New("player speeds must be positive")
	}
	if params.MaxShotPower <= 0 || params.MaxPassPower <= 0 {
		return errors.New("kick powers must be positive")
	}
	if params.SupportSpotRows <= 0 || params.SupportSpotColumns < 2 {
		return fmt.Errorf("invalid support spot grid %dx%d", params.SupportSpotColumns, params.SupportSpotRows)
	}
	if params.SupportInterval <= 0 {
		return errors.New("support interval must be positive")
	}
	if params.ShotAttempts <= 0 {
		return errors.New("shot attempts must be positive")
	}

	keepers := 0
	bounds := world.AABBFrom(params.PitchLeft, params.PitchTop, params.PitchWidth, params.PitchHeight)
	for i, slot := range params.Formation {
		if slot.Role > Attacker {
			return fmt.Errorf("formation slot %d: unknown role %d", i, slot.Role)
		}
		if slot.Role == Goalkeeper {
			keepers++
		}
		if !bounds.ContainsPoint(slot.Defending) || !bounds.ContainsPoint(slot.Attacking) {
			return fmt.Errorf("formation slot %d: outside pitch", i)
		}
		if slot.Defending.X > bounds.Center().X {
			return fmt.Errorf("formation slot %d: defending position in the opponent half", i)
		}
	}
	if keepers != 1 {
		return ErrNoKeeper
	}
	if len(params.Formation) < 2 {
		return errors.New("formation needs field players")
	}
	return nil
}

func (params *Params) pitch() world.Pitch {
	return world.NewPitch(params.PitchLeft, params.PitchTop, params.PitchWidth, params.PitchHeight)
}
