package measure

// Built-in measures. They are immutable and shared by every registry returned from Default.
var (
	Distance = MustMeasure("Distance", "m", map[string]Unit{
		"m":         Scale(1),
		"ft":        Scale(0.3048),
		"survey_ft": Scale(1200.0 / 3937.0),
		"inch":      Scale(0.0254),
		"yd":        Scale(0.9144),
		"mi":        Scale(1609.344),
		"nmi":       Scale(1852),
		"chain":     Scale(20.1168),
		"furlong":   Scale(201.168),
		"fathom":    Scale(1.8288),
	},
		WithSI("m"),
		WithAliases(map[string]string{
			"meter":         "m",
			"metre":         "m",
			"foot":          "ft",
			"feet":          "ft",
			"in":            "inch",
			"inches":        "inch",
			"yard":          "yd",
			"mile":          "mi",
			"nautical_mile": "nmi",
		}),
	)

	Area = MustMeasure("Area", "sq_m", map[string]Unit{
		"sq_m":    Scale(1),
		"sq_km":   Scale(1e6),
		"sq_cm":   Scale(1e-4),
		"sq_mm":   Scale(1e-6),
		"sq_ft":   Scale(0.09290304),
		"sq_in":   Scale(0.00064516),
		"sq_yd":   Scale(0.83612736),
		"sq_mi":   Scale(2589988.110336),
		"acre":    Scale(4046.8564224),
		"hectare": Scale(1e4),
	},
		WithAliases(map[string]string{
			"square_meter":      "sq_m",
			"square_metre":      "sq_m",
			"square_kilometer":  "sq_km",
			"square_centimeter": "sq_cm",
			"square_foot":       "sq_ft",
			"square_inch":       "sq_in",
			"square_yard":       "sq_yd",
			"square_mile":       "sq_mi",
			"ha":                "hectare",
		}),
	)

	Volume = MustMeasure("Volume", "cubic_meter", map[string]Unit{
		"cubic_meter":      Scale(1),
		"l":                Scale(1e-3),
		"cubic_centimeter": Scale(1e-6),
		"cubic_millimeter": Scale(1e-9),
		"cubic_foot":       Scale(0.028316846592),
		"cubic_inch":       Scale(1.6387064e-5),
		"cubic_yard":       Scale(0.764554857984),
		"us_g":             Scale(3.785411784e-3),
		"us_qt":            Scale(9.46352946e-4),
		"us_pint":          Scale(4.73176473e-4),
		"us_cup":           Scale(2.365882365e-4),
		"us_oz":            Scale(2.95735295625e-5),
		"us_tablespoon":    Scale(1.478676478125e-5),
		"us_teaspoon":      Scale(4.92892159375e-6),
		"imperial_g":       Scale(4.54609e-3),
		"imperial_qt":      Scale(1.1365225e-3),
		"imperial_pint":    Scale(5.6826125e-4),
		"imperial_oz":      Scale(2.84130625e-5),
	},
		WithSI("l"),
		WithAliases(map[string]string{
			"cubic_metre": "cubic_meter",
			"liter":       "l",
			"litre":       "l",
			"cc":          "cubic_centimeter",
			"gallon":      "us_g",
			"quart":       "us_qt",
			"pint":        "us_pint",
			"cup":         "us_cup",
			"fl_oz":       "us_oz",
			"tbsp":        "us_tablespoon",
			"tsp":         "us_teaspoon",
		}),
	)

	Weight = MustMeasure("Weight", "g", map[string]Unit{
		"g":         Scale(1),
		"tonne":     Scale(1e6),
		"lb":        Scale(453.59237),
		"oz":        Scale(28.349523125),
		"stone":     Scale(6350.29318),
		"short_ton": Scale(907184.74),
		"long_ton":  Scale(1016046.9088),
	},
		WithSI("g"),
		WithAliases(map[string]string{
			"gram":       "g",
			"gramme":     "g",
			"metric_ton": "tonne",
			"ton":        "short_ton",
			"pound":      "lb",
			"lbs":        "lb",
			"ounce":      "oz",
		}),
	)

	Temperature = MustMeasure("Temperature", "k", map[string]Unit{
		"k": Scale(1),
		"c": Affine(1, 273.15),
		"f": Affine(5.0/9.0, 273.15-32*5.0/9.0),
	},
		WithAliases(map[string]string{
			"kelvin":     "k",
			"celsius":    "c",
			"fahrenheit": "f",
		}),
		WithLabels(map[string]string{
			"k": "°K",
			"c": "°C",
			"f": "°F",
		}),
	)

	Time = MustMeasure("Time", "s", map[string]Unit{
		"s":    Scale(1),
		"min":  Scale(60),
		"hr":   Scale(3600),
		"day":  Scale(86400),
		"week": Scale(604800),
	},
		WithSI("s"),
		WithAliases(map[string]string{
			"second": "s",
			"sec":    "s",
			"minute": "min",
			"hour":   "hr",
			"h":      "hr",
		}),
	)

	Speed = MustBidimensional("Speed", Distance, Time,
		WithAliases(map[string]string{
			"mph":  "mi__hr",
			"kph":  "km__hr",
			"kmh":  "km__hr",
			"knot": "nmi__hr",
			"fps":  "ft__s",
		}),
	)

	Energy = MustMeasure("Energy", "J", map[string]Unit{
		"J":   Scale(1),
		"c":   Scale(4.184),
		"C":   Scale(4184),
		"eV":  Scale(1.602176634e-19),
		"Wh":  Scale(3600),
		"kWh": Scale(3.6e6),
		"BTU": Scale(1055.05585262),
	},
		WithSI("J"),
		WithAliases(map[string]string{
			"joule":        "J",
			"calorie":      "c",
			"kilocalorie":  "C",
			"electronvolt": "eV",
			"watt_hour":    "Wh",
		}),
	)

	Power = MustMeasure("Power", "W", map[string]Unit{
		"W":  Scale(1),
		"hp": Scale(745.69987158227022),
	},
		WithSI("W"),
		WithAliases(map[string]string{
			"watt":       "W",
			"horsepower": "hp",
		}),
	)

	Pressure = MustMeasure("Pressure", "Pa", map[string]Unit{
		"Pa":   Scale(1),
		"atm":  Scale(101325),
		"bar":  Scale(1e5),
		"mbar": Scale(100),
		"psi":  Scale(6894.757293168361),
		"mmHg": Scale(133.322387415),
		"torr": Scale(101325.0 / 760.0),
	},
		WithSI("Pa"),
		WithAliases(map[string]string{
			"pascal":     "Pa",
			"atmosphere": "atm",
		}),
	)

	Frequency = MustMeasure("Frequency", "Hz", map[string]Unit{
		"Hz":  Scale(1),
		"rpm": Scale(1.0 / 60.0),
	},
		WithSI("Hz"),
		WithAliases(map[string]string{
			"hertz": "Hz",
		}),
	)

	Current = MustMeasure("Current", "A", map[string]Unit{
		"A": Scale(1),
	},
		WithSI("A"),
		WithAliases(map[string]string{
			"ampere": "A",
			"amp":    "A",
		}),
	)

	Voltage = MustMeasure("Voltage", "V", map[string]Unit{
		"V": Scale(1),
	},
		WithSI("V"),
		WithAliases(map[string]string{
			"volt": "V",
		}),
	)

	Resistance = MustMeasure("Resistance", "ohm", map[string]Unit{
		"ohm": Scale(1),
	},
		WithSI("ohm"),
		WithLabels(map[string]string{
			"ohm": "Ω",
		}),
	)
)

// builtins lists the measures loaded into Default, in registration order.
var builtins = []*Measure{
	Distance, Area, Volume, Weight, Temperature, Time, Speed,
	Energy, Power, Pressure, Frequency, Current, Voltage, Resistance,
}
