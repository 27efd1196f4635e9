package blocks

import "fmt"

// Decision blocks inserted by the redundancy patterns. Voter and
// Sparing materialize as MATLAB Function blocks whose body is carried
// in the parameter dictionary.

const (
	comparatorPath = "simulink/Quick Insert/Logic and Bit Operations/Equal"
	matlabFnPath   = "simulink/User-Defined Functions/MATLAB Function"
)

// Comparator is the equality block used to check two sensor channels
// against each other.
type Comparator struct{ core }

func NewComparator(a *Allocator) *Comparator {
	return &Comparator{core: newCore(a, KindComparator, "IN1", "IN2", "OUT1")}
}

func (*Comparator) LibraryPath() string        { return comparatorPath }
func (*Comparator) Parameters() map[string]any { return map[string]any{} }

const voterFunction = `function y = voter(u)
                    u = u(~isnan(u));
                    y = mode(u);
                    end
                    `

// Voter selects the majority value among its multiplexed inputs,
// ignoring NaN (missing) channels.
type Voter struct{ core }

func NewVoter(a *Allocator) *Voter {
	return &Voter{core: newCore(a, KindVoter, "IN1", "OUT1")}
}

func (*Voter) LibraryPath() string { return matlabFnPath }

func (*Voter) Parameters() map[string]any {
	return map[string]any{"Function": voterFunction}
}

// Sparing forwards the first N healthy channels, using a parallel
// error-flag vector to decide which channels qualify.
type Sparing struct {
	core
	// N is how many spare channels the select function passes through.
	N int
}

func NewSparing(a *Allocator, n int) *Sparing {
	return &Sparing{core: newCore(a, KindSparing, "IN1", "IN2", "OUT1"), N: n}
}

func restoreSparing(a *Allocator, id int, params map[string]any) (Block, error) {
	n, err := intParam(params, "_n_count")
	if err != nil {
		return nil, err
	}
	return &Sparing{core: restoredCore(a, KindSparing, id, "IN1", "IN2", "OUT1"), N: n}, nil
}

func (*Sparing) LibraryPath() string { return matlabFnPath }

func (s *Sparing) Parameters() map[string]any {
	function := fmt.Sprintf(`function outputs = select(signals, error)

                    num = size(signals, 1);
                    selected = zeros(%d, size(signals, 2));

                    counter = 0;
                    for i = 1:num
                        if error(i) ~= 0 && counter < %d
                            counter = counter + 1;
                            selected(counter, :) = signals(i, :);
                        end

                        if counter >= %d
                            break;
                        end
                    end

                    outputs = selected; `, s.N, s.N, s.N)
	return map[string]any{"Function": function, "_n_count": s.N}
}

const signalAlterFunction = `function y = alter(u)
                    y = u + 1;
                    end
                    `

// SignalAlter offsets a signal by one, used to fault-inject a channel
// for pattern demonstrations.
type SignalAlter struct{ core }

func NewSignalAlter(a *Allocator) *SignalAlter {
	return &SignalAlter{core: newCore(a, KindSignalAlter, "IN1", "OUT1")}
}

func (*SignalAlter) LibraryPath() string { return matlabFnPath }

func (*SignalAlter) Parameters() map[string]any {
	return map[string]any{"Function": signalAlterFunction}
}
