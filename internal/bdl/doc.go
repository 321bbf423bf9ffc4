// Package bdl reads the BDL text a DOE-2 preprocessor emits and turns it into
// raw command records.
//
// The reader is deliberately forgiving: commands outside the consumed set are
// skipped with their blocks, malformed keyword lines are dropped, and an
// unbalanced list runs to the end of the block. Only empty input is an error.
//
// Records keep values exactly as written apart from quote and unit-annotation
// stripping; no numeric coercion happens here.
//
// Structure of a block:
//
//	"Boiler 1" = BOILER
//	DATA FOR Boiler 1
//	   TYPE = HW-BOILER-W/DRAFT
//	   MIN-RATIO = 0.33
//	   CAPACITY = 1.5 MMBTU/HR
//
// Library entries carry positional fields instead of keywords:
//
//	"Curve A" = CURVE-FIT LIBRARY-ENTRY
//	   QUADRATIC COEFFICIENTS ( 0.1, 0.9,
//	      0.0 ) 0.0 1.5
package bdl
