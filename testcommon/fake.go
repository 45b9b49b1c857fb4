package testcommon

// FakeEngine stands in for an inference engine in pipeline tests.
// Transform is applied to every tensor element; nil means identity.
type FakeEngine struct {
	Transform func(float32) float32
	Calls     int
}

// Run returns a new tensor and leaves the input untouched.
func (fe *FakeEngine) Run(input []float32) []float32 {
	fe.Calls++
	out := make([]float32, len(input))
	for i, v := range input {
		if fe.Transform != nil {
			v = fe.Transform(v)
		}
		out[i] = v
	}
	return out
}
