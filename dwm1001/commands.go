package dwm1001

// ShellCommand is one of the DWM1001 firmware shell commands this library
// speaks. The set is closed: every command is paired statically with its
// parser in the Node method that issues it, so there is no string-keyed
// dispatch and the supported surface is auditable here.
type ShellCommand string

const (
	cmdEnter       ShellCommand = "\r"
	cmdDoubleEnter ShellCommand = "\r\r"

	cmdReset         ShellCommand = "reset" // Reboot the module
	cmdSystemInfo    ShellCommand = "si"    // System info dump
	cmdUptime        ShellCommand = "ut"    // Uptime
	cmdPosition      ShellCommand = "apg"   // Get position (mm)
	cmdAccelerometer ShellCommand = "av"    // Accelerometer sample
	cmdNodeMode      ShellCommand = "nmg"   // Get node mode: tag, anchor
	cmdAnchorList    ShellCommand = "la"    // List currently seen anchors
	cmdGPIOClear     ShellCommand = "gc"    // Set GPIO pin LOW
	cmdGPIOSet       ShellCommand = "gs"    // Set GPIO pin HIGH
	cmdGPIOGet       ShellCommand = "gg"    // Get GPIO pin value
	cmdCSVReports    ShellCommand = "lec"   // Toggle CSV location reports
)

const (
	// shellPrompt terminates every shell response and signals readiness
	// for the next command.
	shellPrompt = "dwm> "

	// binaryModeAnswer is what the firmware's binary (TLV) interface
	// replies when poked while not in shell mode.
	binaryModeAnswer = "@\x01\x01"
)
