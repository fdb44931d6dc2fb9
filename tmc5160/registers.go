package tmc5160

// This package implements only the register subset driverbank and the
// stepcore pipeline actually exercise: global config/status, driver current
// and chopper setup, DRV_STATUS fault reporting, and the positioning ramp
// mode switch. The TMC5160 datasheet defines a much larger register map
// (encoder, dcStep, linear ramp generator, MSLUT sine table); none of that
// is reachable from this driver bank, so it isn't reproduced here.

// RegisterComm defines an interface for reading from and writing to hardware registers.
type RegisterComm interface {
	ReadRegister(register uint8, driverIndex uint8) (uint32, error)
	WriteRegister(register uint8, value uint32, driverIndex uint8) error
}

// ReadRegister function using the register constants
func ReadRegister(comm RegisterComm, driverIndex uint8, register uint8) (uint32, error) {
	// Read the register value using the comm interface

	value, err := comm.ReadRegister(register, driverIndex)
	if err != nil {
		return 0, err
	}
	return value, nil
}

// WriteRegister function using the register constants
func WriteRegister(comm RegisterComm, register uint8, driverIndex uint8, value uint32) error {
	// Write the value to the register using the comm interface
	return comm.WriteRegister(register, value, driverIndex)
}

// Register and methods to pack and unpack
// Base Register struct
type Register struct {
	RegisterAddr uint8
	Bytes        uint32
}

// Common New function for creating a new register instance
func NewRegister(addr uint8) *Register {
	return &Register{
		RegisterAddr: addr,
	}
}

// Common Pack method: for subclasses to implement their packing logic
func (r *Register) Pack() uint32 {
	return r.Bytes // Default, should be overridden in register-specific structs
}

// Common Unpack method: for subclasses to implement their unpacking logic
func (r *Register) Unpack(registerValue uint32) {
	r.Bytes = registerValue // Default, should be overridden in register-specific structs
}

// Common GetAddress method
func (r *Register) GetAddress() uint8 {
	return r.RegisterAddr
}

// Common Read method (assuming the communication interface is implemented)
func (r *Register) Read(comm RegisterComm, driverIndex uint8) (uint32, error) {
	return ReadRegister(comm, driverIndex, r.RegisterAddr)
}

// Common Write method
func (r *Register) Write(comm RegisterComm, driverIndex uint8, value uint32) error {
	return WriteRegister(comm, r.RegisterAddr, driverIndex, value)
}

// GCONF Register bit fields' masks and shifts
const (
	// Recalibrate: Zero crossing recalibration during driver disable
	GCONF_Recalibrate_Mask = 1 << 0
	// Faststandstill: Timeout for step execution until standstill detection
	GCONF_Faststandstill_Mask = 1 << 1
	// Enable PWM mode for StealthChop
	GCONF_EnPwmMode_Mask = 1 << 2
	// Enable step input filtering for StealthChop optimization
	GCONF_MultistepFilt_Mask = 1 << 3
	// Motor direction
	GCONF_Shaft_Mask = 1 << 4
	// Error flags on DIAG0 pin
	GCONF_Diag0Error_Mask = 1 << 5
	// Enable DIAG0 for Over temperature warning
	GCONF_Diag0Otpw_Mask = 1 << 6
	// Enable DIAG0 for stall step detection
	GCONF_Diag0StallStep_Mask = 1 << 7
	// Enable DIAG1 for stall direction
	GCONF_Diag1StallDir_Mask = 1 << 8
	// Enable DIAG1 for index position
	GCONF_Diag1Index_Mask = 1 << 9
	// Enable DIAG1 for chopper on state
	GCONF_Diag1Onstate_Mask = 1 << 10
	// Enable DIAG1 for skipped steps
	GCONF_Diag1StepsSkipped_Mask = 1 << 11
	// Enable DIAG0 push-pull output
	GCONF_Diag0IntPushPull_Mask = 1 << 12
	// Enable DIAG1 push-pull output
	GCONF_Diag1PosCompPushPull_Mask = 1 << 13
	// Small hysteresis for step frequency comparison
	GCONF_SmallHysteresis_Mask = 1 << 14
	// Enable emergency stop
	GCONF_StopEnable_Mask = 1 << 15
	// Direct motor coil current and polarity control
	GCONF_DirectMode_Mask = 1 << 16
	// Test mode (not for normal use)
	GCONF_TestMode_Mask = 1 << 17
)

// GCONF Register structure
type GCONF_Register struct {
	Register
	// Fields corresponding to individual settings in GCONF register
	Recalibrate          bool
	Faststandstill       bool
	EnPwmMode            bool
	MultistepFilt        bool
	Shaft                bool
	Diag0Error           bool
	Diag0Otpw            bool
	Diag0StallStep       bool
	Diag1StallDir        bool
	Diag1Index           bool
	Diag1Onstate         bool
	Diag1StepsSkipped    bool
	Diag0IntPushPull     bool
	Diag1PosCompPushPull bool
	SmallHysteresis      bool
	StopEnable           bool
	DirectMode           bool
	TestMode             bool
}

// NewGCONF initializes a new GCONF register instance
func NewGCONF() *GCONF_Register {
	return &GCONF_Register{
		Register: Register{
			RegisterAddr: GCONF, // GCONF register address
		},
	}
}

// Pack the fields into a single 32-bit register value
func (g *GCONF_Register) Pack() uint32 {
	var registerValue uint32

	// Use bitwise OR to set individual bits based on the field values
	if g.Recalibrate {
		registerValue |= GCONF_Recalibrate_Mask
	}
	if g.Faststandstill {
		registerValue |= GCONF_Faststandstill_Mask
	}
	if g.EnPwmMode {
		registerValue |= GCONF_EnPwmMode_Mask
	}
	if g.MultistepFilt {
		registerValue |= GCONF_MultistepFilt_Mask
	}
	if g.Shaft {
		registerValue |= GCONF_Shaft_Mask
	}
	if g.Diag0Error {
		registerValue |= GCONF_Diag0Error_Mask
	}
	if g.Diag0Otpw {
		registerValue |= GCONF_Diag0Otpw_Mask
	}
	if g.Diag0StallStep {
		registerValue |= GCONF_Diag0StallStep_Mask
	}
	if g.Diag1StallDir {
		registerValue |= GCONF_Diag1StallDir_Mask
	}
	if g.Diag1Index {
		registerValue |= GCONF_Diag1Index_Mask
	}
	if g.Diag1Onstate {
		registerValue |= GCONF_Diag1Onstate_Mask
	}
	if g.Diag1StepsSkipped {
		registerValue |= GCONF_Diag1StepsSkipped_Mask
	}
	if g.Diag0IntPushPull {
		registerValue |= GCONF_Diag0IntPushPull_Mask
	}
	if g.Diag1PosCompPushPull {
		registerValue |= GCONF_Diag1PosCompPushPull_Mask
	}
	if g.SmallHysteresis {
		registerValue |= GCONF_SmallHysteresis_Mask
	}
	if g.StopEnable {
		registerValue |= GCONF_StopEnable_Mask
	}
	if g.DirectMode {
		registerValue |= GCONF_DirectMode_Mask
	}
	if g.TestMode {
		registerValue |= GCONF_TestMode_Mask
	}
	return registerValue
}

// Unpack a 32-bit register value into individual fields
func (g *GCONF_Register) Unpack(registerValue uint32) {
	g.Recalibrate = (registerValue & GCONF_Recalibrate_Mask) != 0
	g.Faststandstill = (registerValue & GCONF_Faststandstill_Mask) != 0
	g.EnPwmMode = (registerValue & GCONF_EnPwmMode_Mask) != 0
	g.MultistepFilt = (registerValue & GCONF_MultistepFilt_Mask) != 0
	g.Shaft = (registerValue & GCONF_Shaft_Mask) != 0
	g.Diag0Error = (registerValue & GCONF_Diag0Error_Mask) != 0
	g.Diag0Otpw = (registerValue & GCONF_Diag0Otpw_Mask) != 0
	g.Diag0StallStep = (registerValue & GCONF_Diag0StallStep_Mask) != 0
	g.Diag1StallDir = (registerValue & GCONF_Diag1StallDir_Mask) != 0
	g.Diag1Index = (registerValue & GCONF_Diag1Index_Mask) != 0
	g.Diag1Onstate = (registerValue & GCONF_Diag1Onstate_Mask) != 0
	g.Diag1StepsSkipped = (registerValue & GCONF_Diag1StepsSkipped_Mask) != 0
	g.Diag0IntPushPull = (registerValue & GCONF_Diag0IntPushPull_Mask) != 0
	g.Diag1PosCompPushPull = (registerValue & GCONF_Diag1PosCompPushPull_Mask) != 0
	g.SmallHysteresis = (registerValue & GCONF_SmallHysteresis_Mask) != 0
	g.StopEnable = (registerValue & GCONF_StopEnable_Mask) != 0
	g.DirectMode = (registerValue & GCONF_DirectMode_Mask) != 0
	g.TestMode = (registerValue & GCONF_TestMode_Mask) != 0
}

// Example Register: GSTAT
type GSTAT_Register struct {
	Register
	Reset  bool
	DrvErr bool
	UvCp   bool
}

// NewGSTAT creates a new GSTAT register instance
func NewGSTAT() *GSTAT_Register {
	return &GSTAT_Register{
		Register: Register{
			RegisterAddr: GSTAT, // GSTAT register address
		},
	}
}

// Pack method for GSTAT: overrides the base Pack
func (g *GSTAT_Register) Pack() uint32 {
	var registerValue uint32
	if g.Reset {
		registerValue |= 1 << 0
	}
	if g.DrvErr {
		registerValue |= 1 << 1
	}
	if g.UvCp {
		registerValue |= 1 << 2
	}
	return registerValue
}

// Unpack method for GSTAT: overrides the base Unpack
func (g *GSTAT_Register) Unpack(registerValue uint32) {
	g.Reset = (registerValue & (1 << 0)) != 0
	g.DrvErr = (registerValue & (1 << 1)) != 0
	g.UvCp = (registerValue & (1 << 2)) != 0
}

// DRV_CONF_Register struct to represent the DRV_CONF register
type DRV_CONF_Register struct {
	Register
	BBMTime     uint8 // Break before make delay (5 bits)
	BBMClks     uint8 // Digital BBM Time in clock cycles (4 bits)
	OTSelect    uint8 // Over temperature level selection for bridge disable (2 bits)
	DrvStrength uint8 // Gate drivers current selection (2 bits)
	FiltIsense  uint8 // Filter time constant of sense amplifier (2 bits)
}

// NewDRV_CONF creates a new DRV_CONF register instance
func NewDRV_CONF() *DRV_CONF_Register {
	return &DRV_CONF_Register{
		Register: Register{
			RegisterAddr: DRV_CONF,
		},
	}
}

// Pack method for DRV_CONF: overrides the base Pack
func (d *DRV_CONF_Register) Pack() uint32 {
	var registerValue uint32

	// Pack each field using bitwise operations
	registerValue |= uint32(d.BBMTime&0x1F) << 0     // BBMTime: 5 bits
	registerValue |= uint32(d.BBMClks&0xF) << 8      // BBMClks: 4 bits
	registerValue |= uint32(d.OTSelect&0x3) << 16    // OTSelect: 2 bits
	registerValue |= uint32(d.DrvStrength&0x3) << 18 // DrvStrength: 2 bits
	registerValue |= uint32(d.FiltIsense&0x3) << 20  // FiltIsense: 2 bits

	return registerValue
}

// Unpack method for DRV_CONF: overrides the base Unpack
func (d *DRV_CONF_Register) Unpack(registerValue uint32) {
	// Unpack each field using bitwise operations
	d.BBMTime = uint8((registerValue >> 0) & 0x1F)     // Extract 5 bits for BBMTime
	d.BBMClks = uint8((registerValue >> 8) & 0xF)      // Extract 4 bits for BBMClks
	d.OTSelect = uint8((registerValue >> 16) & 0x3)    // Extract 2 bits for OTSelect
	d.DrvStrength = uint8((registerValue >> 18) & 0x3) // Extract 2 bits for DrvStrength
	d.FiltIsense = uint8((registerValue >> 20) & 0x3)  // Extract 2 bits for FiltIsense
}

// IHOLD_IRUN_Register struct to represent the IHOLD_IRUN register
type IHOLD_IRUN_Register struct {
	Register
	Ihold      uint8 // Standstill current (5 bits)
	Irun       uint8 // Motor run current (5 bits)
	IholdDelay uint8 // Motor power down delay (4 bits)
}

// NewIHOLD_IRUN creates a new IHOLD_IRUN register instance
func NewIHOLD_IRUN() *IHOLD_IRUN_Register {
	return &IHOLD_IRUN_Register{
		Register: Register{
			RegisterAddr: IHOLD_IRUN,
		},
	}
}

// Pack method for IHOLD_IRUN: overrides the base Pack
func (i *IHOLD_IRUN_Register) Pack() uint32 {
	var registerValue uint32

	// Pack each field using bitwise operations
	registerValue |= uint32(i.Ihold&0x1F) << 0      // Ihold: 5 bits
	registerValue |= uint32(i.Irun&0x1F) << 8       // Irun: 5 bits
	registerValue |= uint32(i.IholdDelay&0xF) << 16 // IholdDelay: 4 bits

	return registerValue
}

// Unpack method for IHOLD_IRUN: overrides the base Unpack
func (i *IHOLD_IRUN_Register) Unpack(registerValue uint32) {
	// Unpack each field using bitwise operations
	i.Ihold = uint8((registerValue >> 0) & 0x1F)      // Extract 5 bits for Ihold
	i.Irun = uint8((registerValue >> 8) & 0x1F)       // Extract 5 bits for Irun
	i.IholdDelay = uint8((registerValue >> 16) & 0xF) // Extract 4 bits for IholdDelay
}

// CHOPCONF_Register struct to represent the CHOPCONF register
type CHOPCONF_Register struct {
	Register
	Toff       uint8 // Off time setting (4 bits)
	HstrtTfd   uint8 // Hysteresis start value or fast decay time setting (3 bits)
	HendOffset uint8 // Hysteresis low value or sine wave offset (4 bits)
	Tfd3       bool  // Fast decay time setting bit 3
	Disfdcc    bool  // Disable current comparator usage for fast decay termination
	Rndtf      bool  // Enable random modulation of chopper TOFF time
	Chm        bool  // Chopper mode (0=standard, 1=constant off time with fast decay)
	Tbl        uint8 // Comparator blank time select (2 bits)
	Vsense     bool  // Select resistor voltage sensitivity (low or high)
	Vhighfs    bool  // Enable fullstep switching when VHIGH is exceeded
	Vhighchm   bool  // Enable switching to chm=1 and fd=0 when VHIGH is exceeded
	Tpfd       uint8 // Passive fast decay time (4 bits)
	Mres       uint8 // Microstep resolution (4 bits)
	Intpol     bool  // Enable interpolation to 256 microsteps
	Dedge      bool  // Enable double edge step pulses
	Diss2g     bool  // Disable short to GND protection
	Diss2vs    bool  // Disable short to supply protection
}

// NewCHOPCONF creates a new CHOPCONF register instance
func NewCHOPCONF() *CHOPCONF_Register {
	return &CHOPCONF_Register{
		Register: Register{
			RegisterAddr: CHOPCONF,
		},
	}
}

// Pack method for CHOPCONF: overrides the base Pack
func (c *CHOPCONF_Register) Pack() uint32 {
	var registerValue uint32

	// Pack each field using bitwise operations
	registerValue |= uint32(c.Toff&0xF) << 0       // Toff: 4 bits
	registerValue |= uint32(c.HstrtTfd&0x7) << 4   // HstrtTfd: 3 bits
	registerValue |= uint32(c.HendOffset&0xF) << 7 // HendOffset: 4 bits
	if c.Tfd3 {
		registerValue |= 1 << 11 // Tfd3: 1 bit
	}
	if c.Disfdcc {
		registerValue |= 1 << 12 // Disfdcc: 1 bit
	}
	if c.Rndtf {
		registerValue |= 1 << 13 // Rndtf: 1 bit
	}
	if c.Chm {
		registerValue |= 1 << 14 // Chm: 1 bit
	}
	registerValue |= uint32(c.Tbl&0x3) << 15 // Tbl: 2 bits
	if c.Vsense {
		registerValue |= 1 << 17 // Vsense: 1 bit
	}
	if c.Vhighfs {
		registerValue |= 1 << 18 // Vhighfs: 1 bit
	}
	if c.Vhighchm {
		registerValue |= 1 << 19 // Vhighchm: 1 bit
	}
	registerValue |= uint32(c.Tpfd&0xF) << 20 // Tpfd: 4 bits
	registerValue |= uint32(c.Mres&0xF) << 24 // Mres: 4 bits
	if c.Intpol {
		registerValue |= 1 << 28 // Intpol: 1 bit
	}
	if c.Dedge {
		registerValue |= 1 << 29 // Dedge: 1 bit
	}
	if c.Diss2g {
		registerValue |= 1 << 30 // Diss2g: 1 bit
	}
	if c.Diss2vs {
		registerValue |= 1 << 31 // Diss2vs: 1 bit
	}

	return registerValue
}

// Unpack method for CHOPCONF: overrides the base Unpack
func (c *CHOPCONF_Register) Unpack(registerValue uint32) {
	// Unpack each field using bitwise operations
	c.Toff = uint8((registerValue >> 0) & 0xF)       // Extract 4 bits for Toff
	c.HstrtTfd = uint8((registerValue >> 4) & 0x7)   // Extract 3 bits for HstrtTfd
	c.HendOffset = uint8((registerValue >> 7) & 0xF) // Extract 4 bits for HendOffset
	c.Tfd3 = (registerValue & (1 << 11)) != 0        // Extract 1 bit for Tfd3
	c.Disfdcc = (registerValue & (1 << 12)) != 0     // Extract 1 bit for Disfdcc
	c.Rndtf = (registerValue & (1 << 13)) != 0       // Extract 1 bit for Rndtf
	c.Chm = (registerValue & (1 << 14)) != 0         // Extract 1 bit for Chm
	c.Tbl = uint8((registerValue >> 15) & 0x3)       // Extract 2 bits for Tbl
	c.Vsense = (registerValue & (1 << 17)) != 0      // Extract 1 bit for Vsense
	c.Vhighfs = (registerValue & (1 << 18)) != 0     // Extract 1 bit for Vhighfs
	c.Vhighchm = (registerValue & (1 << 19)) != 0    // Extract 1 bit for Vhighchm
	c.Tpfd = uint8((registerValue >> 20) & 0xF)      // Extract 4 bits for Tpfd
	c.Mres = uint8((registerValue >> 24) & 0xF)      // Extract 4 bits for Mres
	c.Intpol = (registerValue & (1 << 28)) != 0      // Extract 1 bit for Intpol
	c.Dedge = (registerValue & (1 << 29)) != 0       // Extract 1 bit for Dedge
	c.Diss2g = (registerValue & (1 << 30)) != 0      // Extract 1 bit for Diss2g
	c.Diss2vs = (registerValue & (1 << 31)) != 0     // Extract 1 bit for Diss2vs
}

// DRV_STATUS_Register struct to represent the DRV_STATUS register
type DRV_STATUS_Register struct {
	Register
	SgResult   uint16 // stallGuard2 result or motor temperature estimation in standstill (9 bits)
	S2vsa      bool   // Short to supply indicator phase A
	S2vsb      bool   // Short to supply indicator phase B
	Stealth    bool   // stealthChop indicator
	FsActive   bool   // Full step active indicator
	CsActual   uint8  // Actual motor current / smart energy current (5 bits)
	StallGuard bool   // stallGuard2 status
	Ot         bool   // Overtemperature flag
	Otpw       bool   // Overtemperature pre-warning flag
	S2ga       bool   // Short to ground indicator phase A
	S2gb       bool   // Short to ground indicator phase B
	Ola        bool   // Open load indicator phase A
	Olb        bool   // Open load indicator phase B
	Stst       bool   // Standstill indicator
}

// NewDRV_STATUS creates a new DRV_STATUS register instance
func NewDRV_STATUS() *DRV_STATUS_Register {
	return &DRV_STATUS_Register{
		Register: Register{
			RegisterAddr: DRV_STATUS,
		},
	}
}

// Pack method for DRV_STATUS: overrides the base Pack
func (d *DRV_STATUS_Register) Pack() uint32 {
	var registerValue uint32

	// Pack each field using bitwise operations
	registerValue |= uint32(d.SgResult&0x1FF) << 0 // SgResult: 9 bits
	if d.S2vsa {
		registerValue |= 1 << 12 // S2vsa: 1 bit
	}
	if d.S2vsb {
		registerValue |= 1 << 13 // S2vsb: 1 bit
	}
	if d.Stealth {
		registerValue |= 1 << 14 // Stealth: 1 bit
	}
	if d.FsActive {
		registerValue |= 1 << 15 // FsActive: 1 bit
	}
	registerValue |= uint32(d.CsActual&0x1F) << 16 // CsActual: 5 bits
	if d.StallGuard {
		registerValue |= 1 << 24 // StallGuard: 1 bit
	}
	if d.Ot {
		registerValue |= 1 << 25 // Ot: 1 bit
	}
	if d.Otpw {
		registerValue |= 1 << 26 // Otpw: 1 bit
	}
	if d.S2ga {
		registerValue |= 1 << 27 // S2ga: 1 bit
	}
	if d.S2gb {
		registerValue |= 1 << 28 // S2gb: 1 bit
	}
	if d.Ola {
		registerValue |= 1 << 29 // Ola: 1 bit
	}
	if d.Olb {
		registerValue |= 1 << 30 // Olb: 1 bit
	}
	if d.Stst {
		registerValue |= 1 << 31 // Stst: 1 bit
	}

	return registerValue
}

// Unpack method for DRV_STATUS: overrides the base Unpack
func (d *DRV_STATUS_Register) Unpack(registerValue uint32) {
	// Unpack each field using bitwise operations
	d.SgResult = uint16((registerValue >> 0) & 0x1FF) // Extract 9 bits for SgResult
	d.S2vsa = (registerValue & (1 << 12)) != 0        // Extract 1 bit for S2vsa
	d.S2vsb = (registerValue & (1 << 13)) != 0        // Extract 1 bit for S2vsb
	d.Stealth = (registerValue & (1 << 14)) != 0      // Extract 1 bit for Stealth
	d.FsActive = (registerValue & (1 << 15)) != 0     // Extract 1 bit for FsActive
	d.CsActual = uint8((registerValue >> 16) & 0x1F)  // Extract 5 bits for CsActual
	d.StallGuard = (registerValue & (1 << 24)) != 0   // Extract 1 bit for StallGuard
	d.Ot = (registerValue & (1 << 25)) != 0           // Extract 1 bit for Ot
	d.Otpw = (registerValue & (1 << 26)) != 0         // Extract 1 bit for Otpw
	d.S2ga = (registerValue & (1 << 27)) != 0         // Extract 1 bit for S2ga
	d.S2gb = (registerValue & (1 << 28)) != 0         // Extract 1 bit for S2gb
	d.Ola = (registerValue & (1 << 29)) != 0          // Extract 1 bit for Ola
	d.Olb = (registerValue & (1 << 30)) != 0          // Extract 1 bit for Olb
	d.Stst = (registerValue & (1 << 31)) != 0         // Extract 1 bit for Stst
}

// PWMCONF_Register struct to represent the PWMCONF register
type PWMCONF_Register struct {
	Register
	PwmOfs       uint8 // User defined PWM amplitude offset (8 bits)
	PwmGrad      uint8 // User defined PWM amplitude gradient (8 bits)
	PwmFreq      uint8 // PWM frequency selection (2 bits)
	PwmAutoscale bool  // Enable PWM automatic amplitude scaling (1 bit)
	PwmAutograd  bool  // PWM automatic gradient adaptation (1 bit)
	Freewheel    uint8 // Standstill option when motor current setting is zero (2 bits)
	PwmReg       uint8 // Regulation loop gradient (4 bits)
	PwmLim       uint8 // PWM automatic scale amplitude limit when switching on (4 bits)
}

// NewPWMCONF creates a new PWMCONF register instance
func NewPWMCONF() *PWMCONF_Register {
	return &PWMCONF_Register{
		Register: Register{
			RegisterAddr: PWMCONF,
		},
	}
}

// Pack method for PWMCONF: overrides the base Pack
func (p *PWMCONF_Register) Pack() uint32 {
	var registerValue uint32

	// Pack each field using bitwise operations
	registerValue |= uint32(p.PwmOfs&0xFF) << 0  // PwmOfs: 8 bits
	registerValue |= uint32(p.PwmGrad&0xFF) << 8 // PwmGrad: 8 bits
	registerValue |= uint32(p.PwmFreq&0x3) << 16 // PwmFreq: 2 bits
	if p.PwmAutoscale {
		registerValue |= 1 << 18 // PwmAutoscale: 1 bit
	}
	if p.PwmAutograd {
		registerValue |= 1 << 19 // PwmAutograd: 1 bit
	}
	registerValue |= uint32(p.Freewheel&0x3) << 20 // Freewheel: 2 bits
	registerValue |= uint32(p.PwmReg&0xF) << 24    // PwmReg: 4 bits
	registerValue |= uint32(p.PwmLim&0xF) << 28    // PwmLim: 4 bits

	return registerValue
}

// Unpack method for PWMCONF: overrides the base Unpack
func (p *PWMCONF_Register) Unpack(registerValue uint32) {
	// Unpack each field using bitwise operations
	p.PwmOfs = uint8((registerValue >> 0) & 0xFF)     // Extract 8 bits for PwmOfs
	p.PwmGrad = uint8((registerValue >> 8) & 0xFF)    // Extract 8 bits for PwmGrad
	p.PwmFreq = uint8((registerValue >> 16) & 0x3)    // Extract 2 bits for PwmFreq
	p.PwmAutoscale = (registerValue & (1 << 18)) != 0 // Extract 1 bit for PwmAutoscale
	p.PwmAutograd = (registerValue & (1 << 19)) != 0  // Extract 1 bit for PwmAutograd
	p.Freewheel = uint8((registerValue >> 20) & 0x3)  // Extract 2 bits for Freewheel
	p.PwmReg = uint8((registerValue >> 24) & 0xF)     // Extract 4 bits for PwmReg
	p.PwmLim = uint8((registerValue >> 28) & 0xF)     // Extract 4 bits for PwmLim
}

// PWM_SCALE_Register struct to represent the PWM_SCALE register

// RAMPMODE_Register struct for RAMPMODE register (2 bits)
type RAMPMODE_Register struct {
	Register
	mode        RampMode // Mode is now an enum-like type
	comm        RegisterComm
	driverIndex uint8
}
type RampMode uint8

const (
	PositioningMode      RampMode = iota // 0
	VelocityPositiveMode                 // 1
	VelocityNegativeMode                 // 2
	HoldMode                             // 3
)

func NewRAMPMODE(comm RegisterComm, driverIndex uint8) *RAMPMODE_Register {
	return &RAMPMODE_Register{
		Register: Register{
			RegisterAddr: RAMPMODE,
		},
		driverIndex: driverIndex,
		comm:        comm,
		mode:        PositioningMode, // Default to Positioning Mode
	}
}

// SetMode sets the mode of the RAMPMODE register
func (r *RAMPMODE_Register) SetMode(mode RampMode) error {
	r.mode = mode
	registerValue := r.Pack()
	return r.comm.WriteRegister(r.RegisterAddr, uint32(registerValue), r.driverIndex)
}

// GetMode returns the current mode of the RAMPMODE register
func (r *RAMPMODE_Register) GetMode() (RampMode, error) {
	registerValue, err := r.comm.ReadRegister(r.RegisterAddr, r.driverIndex)
	if err != nil {
		return 0, err //Defaults to Postioning Mode
	}

	// Unpack the register value to get the mode
	r.Unpack(uint8(registerValue))
	return r.mode, nil

}

// Pack method for RAMPMODE: packs the mode value into a single byte (now using enums)
func (r *RAMPMODE_Register) Pack() uint8 {
	return uint8(r.mode) // Simply cast the mode to uint8
}

// Unpack method for RAMPMODE: unpacks the mode value from a byte
func (r *RAMPMODE_Register) Unpack(registerValue uint8) {
	r.mode = RampMode(registerValue & 0x03) // Mask to 2 bits
}

// String method to display the mode as a string (useful for logging or debugging)
func (r RampMode) String() string {
	switch r {
	case PositioningMode:
		return "Positioning Mode"
	case VelocityPositiveMode:
		return "Velocity Mode (Positive VMAX)"
	case VelocityNegativeMode:
		return "Velocity Mode (Negative VMAX)"
	case HoldMode:
		return "Hold Mode"
	default:
		return "Unknown Mode"
	}
}
