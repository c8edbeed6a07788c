package dwm1001

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ledGPIOPin drives the user LED D12. The LED is active low.
const ledGPIOPin = 14

// validGPIOPins are the header pins the firmware exposes to shell GPIO
// commands; everything else is reserved for the module's own use.
var validGPIOPins = map[int]bool{
	2: true, 8: true, 9: true, 10: true, 12: true,
	13: true, 14: true, 15: true, 23: true, 27: true,
}

// IsValidGPIOPin reports whether pin is user-accessible on the DWM1001.
func IsValidGPIOPin(pin int) bool {
	return validGPIOPins[pin]
}

func validatePin(pin int) error {
	if !IsValidGPIOPin(pin) {
		return fmt.Errorf("%w: %d", ErrInvalidPin, pin)
	}
	return nil
}

// Example gg line: gpio14: 0
var gpioStatePattern = regexp.MustCompile(`gpio\d+: ([01])`)

// GPIOState reads a GPIO pin. True means the pin is high.
func (n *Node) GPIOState(pin int) (bool, error) {
	if err := validatePin(pin); err != nil {
		return false, err
	}
	out, err := n.session.Run(cmdGPIOGet, strconv.Itoa(pin))
	if err != nil {
		return false, err
	}
	if strings.Contains(out, "reserved") {
		return false, fmt.Errorf("gpio pin %d: %w", pin, ErrReservedPin)
	}

	m := gpioStatePattern.FindStringSubmatch(out)
	if m == nil {
		return false, &ParseError{Cmd: cmdGPIOGet, Output: out}
	}
	return m[1] == "1", nil
}

// SetGPIOHigh drives a GPIO pin high.
func (n *Node) SetGPIOHigh(pin int) error {
	return n.writeGPIO(cmdGPIOSet, pin)
}

// SetGPIOLow drives a GPIO pin low.
func (n *Node) SetGPIOLow(pin int) error {
	return n.writeGPIO(cmdGPIOClear, pin)
}

func (n *Node) writeGPIO(cmd ShellCommand, pin int) error {
	if err := validatePin(pin); err != nil {
		return err
	}
	out, err := n.session.Run(cmd, strconv.Itoa(pin))
	if err != nil {
		return err
	}
	if strings.Contains(out, "reserved") {
		return fmt.Errorf("gpio pin %d: %w", pin, ErrReservedPin)
	}
	return nil
}

// SetLEDOn lights the user LED (D12). The LED is active low.
func (n *Node) SetLEDOn() error {
	return n.SetGPIOLow(ledGPIOPin)
}

// SetLEDOff turns the user LED (D12) off.
func (n *Node) SetLEDOff() error {
	return n.SetGPIOHigh(ledGPIOPin)
}
