package bias

// LastComputedReference is the deepest bit whose reference value was
// computed exactly. Deeper values were extrapolated from the observation
// that the ratio of consecutive values tends to the square root of 0.5.
const LastComputedReference = 15

// Reference holds the documented bias for bits 0 through 31 at a
// resolution of 1/Precision. Entries past LastComputedReference are
// extrapolated and must not be recomputed.
var Reference = [32]float64{
	0.0, 1.0, 0.5, 0.375, 0.273437, 0.19638, 0.139949, 0.099346,
	0.070386, 0.049819, 0.035244, 0.024927, 0.017628, 0.012466, 0.008815, 0.006233,
	0.004407, 0.003117, 0.002204, 0.001558, 0.001102, 0.000779, 0.000551, 0.000390,
	0.000275, 0.000195, 0.000138, 0.000097, 0.000069, 0.000049, 0.000034, 0.000024,
}

// ReferenceValue returns the documented bias for bit, if there is one.
func ReferenceValue(bit int) (float64, bool) {
	if bit < 0 || bit >= len(Reference) {
		return 0, false
	}
	return Reference[bit], true
}

// Extrapolated reports whether the reference value for bit is an estimate.
func Extrapolated(bit int) bool {
	return bit > LastComputedReference && bit < len(Reference)
}
