// Package upgrader rewrites subsystems in place for fault tolerance.
// A pattern grows the subsystem's current and voltage sensor sets to
// the size the pattern needs, cloning the first sensor of each set at
// the same tap points, and inserts a comparator, voter or sparing
// network that funnels the redundant readings into one exported
// decision signal.
package upgrader

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// The six pattern selectors accepted by Apply.
const (
	PatternComparator             = "comparator"
	PatternVoter                  = "voter"
	PatternComparatorVoter        = "C+V"
	PatternVoterComparator        = "V+C"
	PatternComparatorSparing      = "C+S"
	PatternVoterComparatorSparing = "V+C+S"
)

var (
	// ErrUnknownPattern is returned for a pattern selector outside the
	// six known ones.
	ErrUnknownPattern = errors.New("upgrader: unknown pattern")

	// ErrTargetTooSmall is returned when a pattern cannot be sized for
	// the requested fault tolerance target.
	ErrTargetTooSmall = errors.New("upgrader: target too small")
)

// Patterns returns the accepted pattern selectors.
func Patterns() []string {
	return []string{
		PatternComparator,
		PatternVoter,
		PatternComparatorVoter,
		PatternVoterComparator,
		PatternComparatorSparing,
		PatternVoterComparatorSparing,
	}
}

// Upgrader applies fault tolerance patterns to subsystems of a
// detailed system.
type Upgrader struct {
	log *zap.Logger
	rng *rand.Rand
}

// New creates an upgrader. A nil logger disables logging. The rng
// sizes the sparing patterns' redundancy draws; nil falls back to a
// time-seeded source.
func New(log *zap.Logger, rng *rand.Rand) *Upgrader {
	if log == nil {
		log = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Upgrader{log: log, rng: rng}
}

// Apply applies the named pattern to the named subsystem of sys. The
// target is the desired fault tolerance degree, rounded up before
// use. The subsystem's current and voltage sensors form two
// independent working sets; each non-empty set is grown to the
// pattern's required size by cloning the set's first sensor at the
// same tap points, then wired into the pattern's decision network. A
// quantity with no sensors is skipped. Patterns with a defined
// tolerance degree store it on the subsystem.
func (u *Upgrader) Apply(sys *model.System, subsystemName, pattern string, target float64) error {
	sub, ok := sys.SubsystemByUniqueName(subsystemName)
	if !ok {
		return fmt.Errorf("upgrade %s: %w", subsystemName, model.ErrSubsystemNotFound)
	}
	n := int(math.Ceil(target))

	var err error
	switch pattern {
	case PatternComparator:
		err = u.comparatorPattern(sub)
	case PatternVoter:
		err = u.voterPattern(sub, n)
	case PatternComparatorVoter:
		err = u.comparatorVoterPattern(sub, n)
	case PatternVoterComparator:
		err = u.voterComparatorPattern(sub, n)
	case PatternComparatorSparing:
		err = u.comparatorSparingPattern(sub)
	case PatternVoterComparatorSparing:
		err = u.voterComparatorSparingPattern(sub, n)
	default:
		return fmt.Errorf("upgrade %s: %w: %q", subsystemName, ErrUnknownPattern, pattern)
	}
	if err != nil {
		return fmt.Errorf("upgrade %s with %s: %w", subsystemName, pattern, err)
	}

	u.log.Info("applied fault tolerance pattern",
		zap.String("subsystem", subsystemName),
		zap.String("pattern", pattern),
		zap.Int("target", n),
		zap.Int("faultTolerance", sub.FaultTolerance))
	return nil
}

// comparatorPattern pairs up each quantity's readings behind one
// comparator. Binary agree/disagree only, so no tolerance degree is
// stored.
func (u *Upgrader) comparatorPattern(sub *model.Subsystem) error {
	return u.eachSensorSet(sub, func(sensors []blocks.Block) error {
		sensors, err := growSensorSet(sub, sensors, 2)
		if err != nil {
			return err
		}
		return sub.AddComparatorPattern(sensors)
	})
}

// voterPattern sizes each quantity to 2n+1 readings and majority-votes
// them, masking n simultaneous faults.
func (u *Upgrader) voterPattern(sub *model.Subsystem, target int) error {
	odd := 2*target + 1
	return u.eachSensorSet(sub, func(sensors []blocks.Block) error {
		sensors, err := growSensorSet(sub, sensors, odd)
		if err != nil {
			return err
		}
		if err := sub.AddVoterPattern(sensors); err != nil {
			return err
		}
		sub.FaultTolerance = target
		return nil
	})
}

func (u *Upgrader) comparatorVoterPattern(sub *model.Subsystem, target int) error {
	odd := roundUpOdd(target + 1)
	return u.eachSensorSet(sub, func(sensors []blocks.Block) error {
		sensors, err := growSensorSet(sub, sensors, 2*odd)
		if err != nil {
			return err
		}
		if err := sub.AddComparatorVoterPattern(sensors); err != nil {
			return err
		}
		sub.FaultTolerance = odd - 1
		return nil
	})
}

func (u *Upgrader) voterComparatorPattern(sub *model.Subsystem, target int) error {
	odd := roundUpOdd(target + 2)
	return u.eachSensorSet(sub, func(sensors []blocks.Block) error {
		sensors, err := growSensorSet(sub, sensors, odd)
		if err != nil {
			return err
		}
		if err := sub.AddVoterComparatorPattern(sensors); err != nil {
			return err
		}
		sub.FaultTolerance = odd - 2
		return nil
	})
}

func (u *Upgrader) comparatorSparingPattern(sub *model.Subsystem) error {
	return u.eachSensorSet(sub, func(sensors []blocks.Block) error {
		// Each quantity draws its own redundancy size.
		even := 4 + 2*u.rng.Intn(2)
		sensors, err := growSensorSet(sub, sensors, even)
		if err != nil {
			return err
		}
		return sub.AddComparatorSparingPattern(sensors)
	})
}

func (u *Upgrader) voterComparatorSparingPattern(sub *model.Subsystem, target int) error {
	num := target + 2
	if num < 3 {
		return fmt.Errorf("%w: %s needs a target of at least 1", ErrTargetTooSmall, PatternVoterComparatorSparing)
	}
	// The sparing degree is a random odd number in [3, num], drawn
	// once and shared by both quantities.
	odd := 3 + 2*u.rng.Intn((num-3)/2+1)
	return u.eachSensorSet(sub, func(sensors []blocks.Block) error {
		sensors, err := growSensorSet(sub, sensors, num)
		if err != nil {
			return err
		}
		if err := sub.AddVoterComparatorSparingPattern(sensors, odd); err != nil {
			return err
		}
		sub.FaultTolerance = num - 2
		return nil
	})
}

// eachSensorSet runs apply once per non-empty sensor quantity set,
// current first.
func (u *Upgrader) eachSensorSet(sub *model.Subsystem, apply func([]blocks.Block) error) error {
	for _, quantity := range []model.Quantity{model.QuantityCurrent, model.QuantityVoltage} {
		sensors := sensorsOf(sub, quantity)
		if len(sensors) == 0 {
			u.log.Debug("no sensors of quantity, skipping",
				zap.String("subsystem", sub.UniqueName()),
				zap.String("quantity", string(quantity)))
			continue
		}
		if err := apply(sensors); err != nil {
			return err
		}
	}
	return nil
}

// sensorsOf lists the subsystem's sensors measuring the quantity, in
// component order.
func sensorsOf(sub *model.Subsystem, quantity model.Quantity) []blocks.Block {
	var sensors []blocks.Block
	for _, component := range sub.Components() {
		switch component.(type) {
		case *blocks.CurrentSensor:
			if quantity == model.QuantityCurrent {
				sensors = append(sensors, component)
			}
		case *blocks.VoltageSensor:
			if quantity == model.QuantityVoltage {
				sensors = append(sensors, component)
			}
		}
	}
	return sensors
}

// growSensorSet clones the set's first sensor until the set holds at
// least need sensors. Clones tap the same branch as the original; a
// larger set is kept as it is.
func growSensorSet(sub *model.Subsystem, sensors []blocks.Block, need int) ([]blocks.Block, error) {
	if len(sensors) >= need {
		return sensors, nil
	}
	clones, err := sub.AddSensorsLikeExistingSensor(sensors[0], need-len(sensors))
	if err != nil {
		return nil, err
	}
	return append(sensors, clones...), nil
}

// roundUpOdd returns the smallest odd integer >= x.
func roundUpOdd(x int) int {
	if x%2 == 0 {
		return x + 1
	}
	return x
}
