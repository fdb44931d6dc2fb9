//go:build tinygo

package diag

import (
	"github.com/google/shlex"

	"tinygo.org/x/tinygstep/driverbank"
	"tinygo.org/x/tinygstep/stepcore"
	"tinygo.org/x/tinygstep/tmc5160"
)

// Console reads line-oriented foreground commands and maps them onto Core
// and DriverBank -- a debug surface, not a motion-planning interface. It
// never runs from an ISR.
type Console struct {
	core  *stepcore.Core
	bank  *driverbank.DriverBank
	lines *Display
}

// NewConsole builds a Console. lines may be nil if command output should
// only be returned, not also logged to the status display.
func NewConsole(core *stepcore.Core, bank *driverbank.DriverBank, lines *Display) *Console {
	return &Console{core: core, bank: bank, lines: lines}
}

// Execute tokenizes one input line the way a host shell would split a
// command line, and runs the matching command. Unknown commands and
// tokenizer errors both return a one-line error description rather than
// panicking -- a malformed console line must never affect the pipeline.
func (c *Console) Execute(line string) string {
	out := c.execute(line)
	if c.lines != nil && out != "" {
		c.lines.Logf(out)
	}
	return out
}

func (c *Console) execute(line string) string {
	args, err := shlex.Split(line)
	if err != nil {
		return "parse error: " + err.Error()
	}
	if len(args) == 0 {
		return ""
	}

	switch args[0] {
	case "status":
		return c.status()
	case "halt":
		c.core.Halt()
		return "halted"
	case "resume":
		c.core.Recover()
		return "recovered"
	case "selftest":
		return c.selftest()
	default:
		return "unknown command: " + args[0]
	}
}

func (c *Console) status() string {
	snap := c.core.Snapshot()
	if snap.Busy {
		return "busy, fault=" + snap.Fault.String()
	}
	return "idle, fault=" + snap.Fault.String()
}

func (c *Console) selftest() string {
	if c.bank == nil {
		return "no driver bank configured"
	}
	zStatus, zErr := c.bank.Status(stepcore.ZAxis)
	rStatus, rErr := c.bank.Status(stepcore.RAxis)
	if zErr != nil {
		return "Z axis selftest failed: " + zErr.Error()
	}
	if rErr != nil {
		return "R axis selftest failed: " + rErr.Error()
	}
	if !zStatus.WireOK {
		c.core.RaiseFault(stepcore.FaultDriverWire)
		return "Z axis wire fault"
	}
	if !rStatus.WireOK {
		c.core.RaiseFault(stepcore.FaultDriverWire)
		return "R axis wire fault"
	}
	return "OK, Z ifcnt=" + tmc5160.ToHex(zStatus.InterfaceTransmissionCount)
}
