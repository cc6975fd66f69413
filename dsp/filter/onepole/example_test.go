package onepole_test

import (
	"fmt"

	"github.com/cwbudde/algo-lowpass/dsp/filter/onepole"
)

func ExampleApply() {
	out := onepole.Apply([]float64{1, 1, 1, 1}, 0.3)
	fmt.Printf("%.4f %.4f %.4f %.4f\n", out[0], out[1], out[2], out[3])

	// Output:
	// 0.3000 0.5100 0.6570 0.7599
}

func ExampleFilter_ProcessSample() {
	f := onepole.New(0.3)
	for _, x := range []float64{1, -1, 1} {
		fmt.Printf("%.3f\n", f.ProcessSample(x))
	}

	// Output:
	// 0.300
	// -0.090
	// 0.237
}
