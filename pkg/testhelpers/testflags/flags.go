package testflags

import (
	"flag"
	"testing"
)

// Test enablement flags
// Unit tests run by default; golden-vector and native tests need their flags.
var unitTest = flag.Bool("unit", true, "Run the unit go tests")
var vectorTest = flag.Bool("vectors", true, "Run the golden vector go tests")
var nativeTest = flag.Bool("native", false, "Run the tests that call the native chiapos verifier")

// UnitTest will run the test its called from iff the `-unit` or `-short` flag
// is passed when calling `go test`. Otherwise the test will be skipped. UnitTest
// will run the test its called from in parallel.
func UnitTest(t *testing.T) {
	if !*unitTest && !testing.Short() {
		t.SkipNow()
	}
	t.Parallel()
}

// VectorTest will run the test its called from iff the `-vectors` flag is set.
// Vector tests check outputs against values produced by the reference prover
// and run in parallel.
func VectorTest(t *testing.T) {
	if !*vectorTest {
		t.SkipNow()
	}
	t.Parallel()
}

// NativeTest will run the test its called from iff the `-native` flag is
// passed when calling `go test`. Native tests run serially.
func NativeTest(t *testing.T) {
	if !*nativeTest {
		t.SkipNow()
	}
}

// BadUnitTestWithSideEffects will run the test its called from iff the
// `-unit` or `-short` flag is passed when calling `go test`. Otherwise the test
// will be skipped. BadUnitTestWithSideEffects will run the test its called
// serially. Tests that use this flag are bad an should feel bad.
func BadUnitTestWithSideEffects(t *testing.T) {
	if !*unitTest && !testing.Short() {
		t.SkipNow()
	}
}
