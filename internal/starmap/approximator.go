package starmap

// Approximator fits a scattered-data interpolator over support coordinates
// and evaluates it at arbitrary target coordinates. All three methods
// (linear, nearest, gaussian_process) implement this contract uniformly.
type Approximator interface {
	Fit(coords [][2]float64, values [][]float64) error
	Predict(coords [][2]float64) ([][]float64, error)
}

// StdApproximator is implemented by approximators that can report
// predictive uncertainty; only the Gaussian-process approximator does, and
// only it is used by auto_improve.
type StdApproximator interface {
	PredictStd(coords [][2]float64) ([]float64, error)
}

// Method names accepted by SetMethod.
const (
	MethodLinear          = "linear"
	MethodNearest         = "nearest"
	MethodGaussianProcess = "gaussian_process"
)

func isValidMethod(m string) bool {
	switch m {
	case MethodLinear, MethodNearest, MethodGaussianProcess:
		return true
	default:
		return false
	}
}
