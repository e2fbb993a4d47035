package entity

// Fuel tank characteristics: volume in m^3, mass in kg, burn rate in m^3/s,
// density in kg/m^3 and specific impulse in m/s.
const (
	TankMaxVolume = 1988.23
	TankEmptyMass = 94064.0
	TankBurnRate  = 10.714
	FuelDensity   = 280.0
	FuelImpulse   = 3830.0
)

// FuelTank tracks the propellant left and converts burns into thrust.
type FuelTank struct {
	volume float64
}

// NewFuelTank creates a full tank.
func NewFuelTank() *FuelTank {
	return &FuelTank{volume: TankMaxVolume}
}

// Mass returns the tank mass including propellant.
func (t *FuelTank) Mass() float64 {
	return TankEmptyMass + t.volume*FuelDensity
}

// Thrust burns fuel for dt seconds and returns the thrust force in N.
// An empty tank yields zero and burns nothing.
func (t *FuelTank) Thrust(dt float64) float64 {
	if t.IsEmpty() {
		return 0
	}
	if dt > 0 {
		t.volume -= TankBurnRate * dt
		if t.volume < 0 {
			t.volume = 0
		}
	}
	return TankBurnRate * FuelDensity * FuelImpulse
}

// Fill adds percent of the maximum volume, clamped to full.
func (t *FuelTank) Fill(percent float64) {
	if percent <= 0 {
		return
	}
	t.volume += TankMaxVolume / 100 * percent
	if t.volume > TankMaxVolume {
		t.volume = TankMaxVolume
	}
}

// Refill fills the tank completely.
func (t *FuelTank) Refill() {
	t.volume = TankMaxVolume
}

// IsEmpty reports whether no fuel is left.
func (t *FuelTank) IsEmpty() bool {
	return t.volume <= 0
}

// Volume returns the remaining fuel volume.
func (t *FuelTank) Volume() float64 {
	return t.volume
}

// Level returns the remaining fuel as a fraction in [0, 1].
func (t *FuelTank) Level() float64 {
	return t.volume / TankMaxVolume
}
