package simscape

import (
	"fmt"
	"strings"
	"time"

	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/blocks"
	"github.com/Patrick-Hummel/AI-Simscape-Model-Generator/internal/model"
)

// Script renders sys as a standalone MATLAB build script. Running the
// script recreates the model: solver and stop time first, each
// subsystem as a hollowed-out Subsystem shell refilled from library
// paths, the routed inner lines, then the top-level blocks and the
// handle-addressed top-level lines, ending with save_system. Output
// is deterministic for a given system.
func Script(sys *model.System, modelName string) (string, error) {
	data, err := Export(sys)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	put := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	put("%% Simscape build script for %s.", modelName)
	put("new_system(%s);", q(modelName))
	put("open_system(%s);", q(modelName))
	put("")
	for _, p := range data.Parameters {
		put("set_param(%s, %s, %s);", q(modelName), q(p.Name), q(p.Value))
	}
	put("")

	for _, sub := range data.Subsystems {
		path := modelName + "/" + sub.Name
		put("add_block('simulink/Ports & Subsystems/Subsystem', %s);", q(path))
		put("set_param(%s, 'Position', %s);", q(path), rect(sub.Position))
		put("delete_line(%s, 'In1/1', 'Out1/1');", q(path))
		put("delete_block(%s);", q(path+"/In1"))
		put("delete_block(%s);", q(path+"/Out1"))
		put("")
		for _, blk := range sub.Blocks {
			writeBlock(put, path, blk)
		}
		for _, line := range sub.Lines {
			put("add_line(%s, %s, %s, 'autorouting', 'on');", q(path), q(line.From), q(line.To))
		}
		if len(sub.Lines) > 0 {
			put("")
		}
	}

	for _, blk := range data.Blocks {
		writeBlock(put, modelName, blk)
	}

	for _, line := range data.Lines {
		writeHandle(put, modelName, "src", line.From)
		writeHandle(put, modelName, "dst", line.To)
		put("add_line(%s, src, dst, 'autorouting', 'on');", q(modelName))
		put("")
	}

	put("save_system(%s);", q(modelName))
	return b.String(), nil
}

// ScriptFileName builds the timestamped file name a generated script
// is saved under, "simscape_<model>_<yyyymmdd_hhmm>.m".
func ScriptFileName(modelName string, now time.Time) string {
	return fmt.Sprintf("simscape_%s_%s.m", modelName, now.Format("20060102_1504"))
}

func writeBlock(put func(string, ...any), parent string, blk BlockData) {
	path := parent + "/" + blk.Name
	put("add_block(%s, %s);", q(blk.Library), q(path))
	put("set_param(%s, 'Position', %s);", q(path), rect(blk.Position))
	for _, p := range blk.Parameters {
		if p.Name == "Function" {
			// MATLAB Function blocks take their source through the
			// function configuration object, not set_param.
			put("config = get_param(%s, 'MATLABFunctionConfiguration');", q(path))
			put("config.FunctionScript = %s;", sprintfCall(p.Value))
			continue
		}
		put("set_param(%s, %s, %s);", q(path), q(p.Name), q(p.Value))
	}
	if blk.Kind == string(blocks.KindFromWorkspace) {
		if name, ok := parameterValue(blk.Parameters, "VariableName"); ok {
			put("assignin('base', %s, struct('time', [0], 'signals', struct('values', [1])));", q(name))
		}
	}
	put("")
}

// writeHandle emits the lookup of one top-level endpoint handle into
// the named script variable. The conserving handle of a boundary
// connection-port block sits one below the subsystem's matching
// boundary handle, hence the decrement.
func writeHandle(put func(string, ...any), modelName, varName string, ref HandleRef) {
	put("handles = get_param(%s, 'PortHandles');", q(modelName+"/"+ref.Path))
	if ref.Subsystem {
		put("%s = handles.RConn(1) - 1;", varName)
		return
	}
	put("%s = handles.%s(%d);", varName, ref.Conn, ref.Index)
}

func parameterValue(params []Parameter, name string) (string, bool) {
	for _, p := range params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// sprintfCall renders s as a MATLAB sprintf('...') expression, the
// only single-quoted form that can carry newlines.
func sprintfCall(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "%", "%%", "'", "''", "\n", "\\n")
	return "sprintf('" + r.Replace(s) + "')"
}

// q single-quotes s for MATLAB, doubling embedded quotes.
func q(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// rect renders a position rectangle as a MATLAB row vector.
func rect(p [4]int) string {
	return fmt.Sprintf("[%d %d %d %d]", p[0], p[1], p[2], p[3])
}
