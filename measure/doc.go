// Package measure provides measurement values: a magnitude coupled to a physical unit.
//
// A Measure (Distance, Weight, Temperature, ...) owns a table of units and one standard unit.
// Values keep their magnitude in the standard unit, so arithmetic and comparison never depend on
// the unit a value was created in:
//
//	d := measure.Distance.MustNew(2, "mi")
//	km, _ := d.In("km") // 3.218688
//
//	total, err := d.Add(measure.Distance.MustNew(500, "m")) // 2.3106... mi
//
// Bidimensional measures are the ratio of two measures (Speed = Distance / Time). Their units are
// written "primary__reference", e.g. "mi__hr", or by alias ("mph").
//
// A Registry resolves measures by name. It is the entry point for values read back from storage,
// for guessing the measure of a bare unit and for custom measures loaded from definition files.
package measure
