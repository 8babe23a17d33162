package component

import (
	"math"

	"boardscan/pkg/geometry"
)

// EstimateProperties buckets size and shape into the property bag for t.
// Types without estimators get an empty bag.
func EstimateProperties(t Type, bounds geometry.Rect, area float64) Properties {
	var p Properties

	switch t {
	case Resistor:
		p.EstimatedValue = resistorValue(area)
		p.PowerRating = resistorPower(area)
	case Capacitor:
		p.Capacitance = capacitance(area)
		p.Voltage = capacitorVoltage(area)
	case IC:
		p.PinCount = estimatePinCount(bounds)
		p.Package = estimateICPackage(bounds)
	case Diode:
		p.Kind = "Standard"
		p.ForwardVoltage = "0.7V"
	case Transistor:
		p.Kind, p.Package = estimateTransistor(bounds)
	}

	return p
}

func resistorValue(area float64) string {
	size := math.Sqrt(area)
	switch {
	case size < 20:
		return "1/8W (100Ω - 1kΩ)"
	case size < 40:
		return "1/4W (1kΩ - 10kΩ)"
	default:
		return "1/2W (10kΩ - 100kΩ)"
	}
}

func resistorPower(area float64) string {
	switch {
	case area < 300:
		return "1/8W"
	case area < 600:
		return "1/4W"
	case area < 1200:
		return "1/2W"
	default:
		return "1W+"
	}
}

func capacitance(area float64) string {
	size := math.Sqrt(area)
	switch {
	case size < 25:
		return "1pF - 100pF"
	case size < 50:
		return "100pF - 1µF"
	default:
		return "1µF - 1000µF"
	}
}

func capacitorVoltage(area float64) string {
	switch {
	case area < 200:
		return "16V"
	case area < 500:
		return "25V"
	case area < 1000:
		return "50V"
	default:
		return "100V+"
	}
}
