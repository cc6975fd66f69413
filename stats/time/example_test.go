package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-lowpass/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f zc=%d roughness=%.1f\n", s.RMS, s.ZeroCrossings, s.Roughness)

	// Output:
	// rms=1.0 zc=3 roughness=2.0
}
