/*
Copyright 2026 Clinsift Authors
SPDX-License-Identifier: Apache-2.0
*/

package record

// Getter projects one scored field out of a record. The metric engine takes
// getters rather than paths so each call site names exactly the field under
// evaluation.
type Getter func(Record) Value

// field builds a Getter for a fixed key path.
func field(keys ...string) Getter {
	return func(rec Record) Value {
		return Lookup(rec, keys...)
	}
}

// The six scored fields of the extraction schema.
var (
	DiabetesType         = field("diabetes", "type")
	DiabetesStatus       = field("diabetes", "status")
	DiabetesA1C          = field("diabetes", "a1c_values")
	DiabetesGlucose      = field("diabetes", "glucose_values")
	HypertensionStatus   = field("blood_pressure", "hypertension_status")
	BloodPressureReading = field("blood_pressure", "bp_readings")
)
